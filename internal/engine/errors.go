package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrTitleNotFound marks a query that matched no corpus title.
	ErrTitleNotFound = errors.New("movie not found")
	// ErrInvalidK marks a non-positive result count.
	ErrInvalidK = errors.New("k must be a positive integer")
)

// NotFoundError carries the query that failed to resolve.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrTitleNotFound.Error(), e.Query)
}

func (e *NotFoundError) Unwrap() error {
	return ErrTitleNotFound
}

// ErrorKind classifies the failure for callers that map errors to exit states.
func (e *NotFoundError) ErrorKind() string {
	return "not_found"
}
