package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota + 1
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a ledger failure the caller can act on. Field is empty when the
// problem concerns the input as a whole.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

var (
	ErrMissingInput = &Error{Kind: KindInvalidInput, Message: "missing input"}
	ErrBodyTooLarge = &Error{Kind: KindInvalidInput, Message: "request body too large"}
)

func invalidField(field, format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Field: field, Message: fmt.Sprintf(format, args...)}
}

func invalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsInvalidInput(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindInvalidInput
}
