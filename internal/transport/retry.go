package transport

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Policy controls automatic retry of transient request failures.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// Backoff is the base delay; the wait before retry i is Backoff * 2^i.
	Backoff time.Duration
	// RetryStatuses are the HTTP status codes considered transient.
	RetryStatuses []int
}

// DefaultPolicy mirrors the retry behavior the upstream APIs were tuned
// against: three retries, 300ms base backoff, server-side transient codes.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:    3,
		Backoff:       300 * time.Millisecond,
		RetryStatuses: []int{500, 502, 504},
	}
}

func (p Policy) transient(status int) bool {
	for _, s := range p.RetryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// NewClient returns an HTTP client that retries connection failures and
// transient status codes with exponential backoff, with optional proxy
// support.
func NewClient(p Policy, proxyURL string) *http.Client {
	base := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			base.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: &retryTransport{base: base, policy: p},
	}
}

// retryTransport implements the retry policy as a RoundTripper so every
// request on the client gets it, not just the ones that remember to loop.
type retryTransport struct {
	base   http.RoundTripper
	policy Policy
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// A consumed body cannot be replayed without GetBody; send such
	// requests through unchanged.
	if req.Body != nil && req.GetBody == nil {
		return t.base.RoundTrip(req)
	}

	var resp *http.Response
	var err error
	for attempt := 0; ; attempt++ {
		if attempt > 0 && req.GetBody != nil {
			body, berr := req.GetBody()
			if berr != nil {
				return nil, fmt.Errorf("rewind request body: %w", berr)
			}
			req.Body = body
		}

		resp, err = t.base.RoundTrip(req)
		if err == nil && !t.policy.transient(resp.StatusCode) {
			return resp, nil
		}
		if attempt >= t.policy.MaxRetries {
			break
		}
		if err == nil {
			// Drain so the connection can be reused for the retry.
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		wait := time.Duration(1<<uint(attempt)) * t.policy.Backoff
		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(wait):
		}
	}

	if err != nil {
		return nil, fmt.Errorf("all %d attempts failed: %w", t.policy.MaxRetries+1, err)
	}
	// Out of retries; hand the last transient response to the caller.
	return resp, nil
}
