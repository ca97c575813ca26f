package collector

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication means the brokerage rejected the refresh token.
	ErrAuthentication = errors.New("brokerage rejected the refresh token")
	// ErrNotAuthenticated means an authenticated operation was called
	// before Authenticate succeeded.
	ErrNotAuthenticated = errors.New("client is not authenticated")
	// ErrNoExactMatch means the symbol search did not put an exact ticker
	// match first.
	ErrNoExactMatch = errors.New("no exact match for the requested ticker")
)

// ResponseShapeError reports a JSON response missing a key the provider
// contract promises. It usually means the provider answered with an error
// payload, or changed its schema.
type ResponseShapeError struct {
	Key string
}

func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf("response missing expected key %q", e.Key)
}
