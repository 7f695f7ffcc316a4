package core

import "errors"

// ErrNotFound is returned by stores when no record has the requested id.
var ErrNotFound = errors.New("record not found")

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindReference
	KindConflict
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindReference:
		return "reference"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a request-level failure whose Message is shown to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func Reference(msg string) error  { return &Error{Kind: KindReference, Message: msg} }
func Conflict(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }

// KindOf returns the kind of err, or 0 when err is not a *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
