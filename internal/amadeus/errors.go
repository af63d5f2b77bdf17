package amadeus

import (
	"errors"
	"fmt"
)

// ErrRateLimited marks a 429 from the provider. Callers may retry
// with backoff; everything else in StatusError is not worth retrying.
var ErrRateLimited = errors.New("amadeus: rate limited")

// AuthError is returned when the client-credentials exchange fails or
// the token payload is unusable. It aborts the whole request; the
// previously cached token (if any) is left untouched.
type AuthError struct {
	Status int
	Reason string
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("amadeus auth: %s (status %d)", e.Reason, e.Status)
	}
	return "amadeus auth: " + e.Reason
}

// StatusError is a non-2xx, non-429 provider response.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("amadeus: unexpected status %d from %s", e.Status, e.URL)
}
