package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"GapScanner/internal/model"
)

// Granularity is the candle interval accepted by the brokerage.
type Granularity string

const (
	GranularityOneMinute      Granularity = "OneMinute"
	GranularityFiveMinutes    Granularity = "FiveMinutes"
	GranularityFifteenMinutes Granularity = "FifteenMinutes"
	GranularityHalfHour       Granularity = "HalfHour"
	GranularityOneHour        Granularity = "OneHour"
	GranularityOneDay         Granularity = "OneDay"
	GranularityOneWeek        Granularity = "OneWeek"
	GranularityOneMonth       Granularity = "OneMonth"
)

const defaultLoginURL = "https://login.questrade.com"

// candleTimeSuffix turns a yyyy-mm-dd date into the full timestamp the
// candle endpoint requires. The offset is pinned to Eastern time because
// the upstream tooling always anchored it there; consumers depend on the
// exact value.
const candleTimeSuffix = "T00:00:00-05:00"

// Questrade wraps the brokerage REST API behind a single authenticated
// session. The access token, the derived Authorization header, and the
// account cache are owned by the instance, so one Questrade value is one
// logical session; it is not safe for concurrent use.
type Questrade struct {
	LoginURL string
	// APIVersion is the path prefix for authenticated endpoints.
	APIVersion string
	Client     *http.Client

	token         model.AccessToken
	authHeader    string
	accounts      []model.Account
	authenticated bool
}

// NewQuestrade creates an unauthenticated client. Call Authenticate with a
// refresh token before using any other operation.
func NewQuestrade(loginURL string, client *http.Client) *Questrade {
	if loginURL == "" {
		loginURL = defaultLoginURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Questrade{LoginURL: loginURL, APIVersion: "v1", Client: client}
}

func (q *Questrade) Name() string { return "questrade" }

// Authenticate exchanges a long-lived refresh token for an access token,
// installs the Authorization header used by all subsequent calls, and
// immediately fetches the account list.
func (q *Questrade) Authenticate(ctx context.Context, refreshToken string) error {
	if err := q.exchange(ctx, refreshToken); err != nil {
		return err
	}
	if _, err := q.FetchAccounts(ctx); err != nil {
		return fmt.Errorf("fetch accounts after authenticate: %w", err)
	}
	return nil
}

// Refresh obtains a new access token using the refresh token stored from
// the previous exchange. The client does not detect expiry reactively;
// callers must refresh before TokenExpiry passes.
func (q *Questrade) Refresh(ctx context.Context) error {
	if !q.authenticated {
		return ErrNotAuthenticated
	}
	return q.exchange(ctx, q.token.RefreshToken)
}

func (q *Questrade) exchange(ctx context.Context, refreshToken string) error {
	endpoint := fmt.Sprintf("%s/oauth2/token?grant_type=refresh_token&refresh_token=%s",
		strings.TrimSuffix(q.LoginURL, "/"), url.QueryEscape(refreshToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := q.Client.Do(req)
	if err != nil {
		return fmt.Errorf("exchange refresh token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("exchange refresh token: read body: %w", err)
	}
	// A rejected token comes back as the literal text "Bad Request", not
	// JSON. Check for it before decoding.
	if string(body) == "Bad Request" {
		return fmt.Errorf("exchange refresh token: %w", ErrAuthentication)
	}

	var tok model.AccessToken
	if err := json.Unmarshal(body, &tok); err != nil {
		return fmt.Errorf("decode access token: %w", err)
	}
	tok.ObtainedAt = time.Now()

	q.token = tok
	q.authHeader = tok.TokenType + " " + tok.AccessToken
	q.authenticated = true
	return nil
}

// TokenExpiry returns when the current access token goes stale, or the
// zero time when unauthenticated.
func (q *Questrade) TokenExpiry() time.Time {
	if !q.authenticated {
		return time.Time{}
	}
	return q.token.ExpiresAt()
}

// Accounts returns the account list cached by the last fetch.
func (q *Questrade) Accounts() []model.Account {
	return q.accounts
}

// FetchAccounts retrieves the account list and overwrites the cached copy.
func (q *Questrade) FetchAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := q.getKey(ctx, "accounts", "accounts", &accounts); err != nil {
		return nil, fmt.Errorf("fetch accounts: %w", err)
	}
	q.accounts = accounts
	return accounts, nil
}

// Candles fetches candles for a symbol between startDate and endDate,
// both formatted yyyy-mm-dd, at the given granularity.
func (q *Questrade) Candles(ctx context.Context, symbolID int, startDate, endDate string, granularity Granularity) ([]model.Candle, error) {
	endpoint := fmt.Sprintf("markets/candles/%d?startTime=%s&endTime=%s&interval=%s",
		symbolID,
		url.QueryEscape(startDate+candleTimeSuffix),
		url.QueryEscape(endDate+candleTimeSuffix),
		granularity)

	var candles []model.Candle
	if err := q.getKey(ctx, endpoint, "candles", &candles); err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}
	return candles, nil
}

// Quote fetches the current market quote for a symbol.
func (q *Questrade) Quote(ctx context.Context, symbolID int) (*model.Quote, error) {
	var quotes []model.Quote
	if err := q.getKey(ctx, fmt.Sprintf("markets/quotes/%d", symbolID), "quotes", &quotes); err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("fetch quote: %w", &ResponseShapeError{Key: "quotes"})
	}
	return &quotes[0], nil
}

// SymbolID resolves a ticker to the brokerage's numeric symbol id. The
// search endpoint matches by prefix; only an exact match in the FIRST
// result is accepted, even if an exact match appears further down the
// list.
func (q *Questrade) SymbolID(ctx context.Context, ticker string) (int, error) {
	var symbols []struct {
		Symbol   string `json:"symbol"`
		SymbolID int    `json:"symbolId"`
	}
	endpoint := fmt.Sprintf("symbols/search?prefix=%s", url.QueryEscape(ticker))
	if err := q.getKey(ctx, endpoint, "symbols", &symbols); err != nil {
		return 0, fmt.Errorf("search symbol: %w", err)
	}
	if len(symbols) == 0 {
		return 0, fmt.Errorf("%w: search returned no symbols for %q", ErrNoExactMatch, ticker)
	}
	if symbols[0].Symbol != ticker {
		return 0, fmt.Errorf("%w: ticker %q, first result %q", ErrNoExactMatch, ticker, symbols[0].Symbol)
	}
	return symbols[0].SymbolID, nil
}

// getKey performs an authenticated GET against the api server and decodes
// the named top-level key of the JSON response into dst. A missing key is
// a ResponseShapeError.
func (q *Questrade) getKey(ctx context.Context, pathAndQuery, key string, dst any) error {
	if !q.authenticated {
		return ErrNotAuthenticated
	}
	endpoint := fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(q.token.APIServer, "/"), q.APIVersion, pathAndQuery)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", q.authHeader)

	resp, err := q.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	raw, ok := payload[key]
	if !ok {
		return &ResponseShapeError{Key: key}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}
