package openlibrary

import (
	"errors"
	"fmt"
)

// Fetch failure causes.
var (
	// ErrFetch matches every *FetchError via errors.Is.
	ErrFetch            = errors.New("fetch failed")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMalformedPayload = errors.New("malformed search payload")
)

// FetchError reports a failed page fetch. It carries no partial results.
type FetchError struct {
	Query string
	Page  int
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	Err        error
}

func newFetchError(query string, page, status int, err error) *FetchError {
	return &FetchError{Query: query, Page: page, StatusCode: status, Err: err}
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %q page %d: %v (status %d)", e.Query, e.Page, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("fetching %q page %d: %v", e.Query, e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFetch) true for any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
