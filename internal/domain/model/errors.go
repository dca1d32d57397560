package model

import (
	"errors"
	"fmt"
)

// Error kinds raised while building a preference matrix or ranking teams.
// Callers distinguish them with errors.Is.
var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrSequenceMismatch = errors.New("sequence mismatch")
	ErrUnknownPair      = errors.New("unknown pair")
	ErrInvalidCode      = errors.New("invalid code")
)

// kinds lists every error kind in a stable order.
var kinds = []error{ErrMalformedInput, ErrSequenceMismatch, ErrUnknownPair, ErrInvalidCode}

// Error carries the operation that failed, the kind of failure and a detail
// message for humans.
type Error struct {
	Op     string
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Detail)
}

// Unwrap exposes the kind to errors.Is.
func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind with a formatted detail.
func Errorf(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind err belongs to, or nil if it is not a domain error.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// KindName returns a stable snake_case name for the kind of err, suitable for
// metric labels and API error codes. Unknown errors map to "internal".
func KindName(err error) string {
	switch KindOf(err) {
	case ErrMalformedInput:
		return "malformed_input"
	case ErrSequenceMismatch:
		return "sequence_mismatch"
	case ErrUnknownPair:
		return "unknown_pair"
	case ErrInvalidCode:
		return "invalid_code"
	default:
		return "internal"
	}
}
