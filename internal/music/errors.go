package music

import (
	"errors"
	"fmt"
)

// Kind classifies a failed load.
type Kind string

// Load failure kinds.
const (
	KindIndexUnavailable      Kind = "index_unavailable"
	KindExclusionsUnavailable Kind = "exclusions_unavailable"
	KindInconsistent          Kind = "inconsistent"
)

// LoadError is returned by Loader.Load when no library could be produced.
// An empty index is not a LoadError; see Result.Empty.
type LoadError struct {
	Kind       Kind
	Message    string
	Violations []Violation // set for KindInconsistent
	cause      error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	msg := e.Message
	if n := len(e.Violations); n > 0 {
		msg = fmt.Sprintf("%s (%d violations, first: %s)", msg, n, e.Violations[0])
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.cause
}

// Is matches any *LoadError of the same Kind.
func (e *LoadError) Is(target error) bool {
	var t *LoadError
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func (e *LoadError) withCause(err error) *LoadError {
	return &LoadError{Kind: e.Kind, Message: e.Message, Violations: e.Violations, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrIndexUnavailable      = &LoadError{Kind: KindIndexUnavailable, Message: "media index unavailable"}
	ErrExclusionsUnavailable = &LoadError{Kind: KindExclusionsUnavailable, Message: "excluded paths unavailable"}
	ErrInconsistent          = &LoadError{Kind: KindInconsistent, Message: "library is inconsistent"}
)

func inconsistent(violations []Violation) *LoadError {
	return &LoadError{
		Kind:       KindInconsistent,
		Message:    ErrInconsistent.Message,
		Violations: violations,
	}
}
