package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the collaborators around the record engine.
type ErrorKind int

const (
	// KindTransport means no response was received.
	KindTransport ErrorKind = iota + 1
	// KindMalformedResponse means a response arrived but failed shape validation.
	KindMalformedResponse
	// KindMalformedInput means user-supplied import data failed validation.
	KindMalformedInput
	// KindStorage means the database rejected or failed an operation.
	KindStorage
)

// String returns the kind name used in logs and API errors.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindMalformedResponse:
		return "malformed_response"
	case KindMalformedInput:
		return "malformed_input"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is a categorized failure. Op names the operation that failed.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a categorized error.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
