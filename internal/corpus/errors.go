package corpus

import (
	"errors"
	"fmt"
)

// ErrCorpusLoad marks failures that prevent a corpus from being loaded.
var ErrCorpusLoad = errors.New("corpus load failed")

// LoadError describes why a source could not be loaded. It matches
// ErrCorpusLoad under errors.Is.
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func newLoadError(source, reason string, err error) *LoadError {
	return &LoadError{Source: source, Reason: reason, Err: err}
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load corpus %s: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCorpusLoad}
	}
	return []error{ErrCorpusLoad, e.Err}
}

// ErrorKind classifies the failure for callers that map errors to exit states.
func (e *LoadError) ErrorKind() string {
	return "configuration"
}
