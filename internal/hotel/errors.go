package hotel

import "errors"

// ErrNoCandidates is returned by discovery when the provider knows no
// hotels for the queried location. Callers treat it as an empty
// result, not a fault.
var ErrNoCandidates = errors.New("hotel: no candidates for location")

// ValidationError is malformed caller input, caught before any
// network call. It aborts the request and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}
