package crmerrors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind classifies a failure for the workflow layer.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindStorage
	KindPermission
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

// Error is the only error type the record services hand back to callers.
// Message is safe to show to the operator; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Permission(message string) error {
	return &Error{Kind: KindPermission, Message: message}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Storage(err error, message string) error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

func Unexpected(err error, message string) error {
	return &Error{Kind: KindUnexpected, Message: message, Err: err}
}

// FromStorage reclassifies an error returned by a repository call.
// Errors that are already classified pass through untouched.
func FromStorage(err error, message string) error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Message: message, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindValidation, Message: "This value is already in use.", Err: err}
	default:
		return &Error{Kind: KindStorage, Message: message, Err: err}
	}
}

// KindOf returns the kind of err; unclassified errors are unexpected.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindUnexpected
}

// MessageOf returns the operator-facing message carried by err.
func MessageOf(err error) string {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Message
	}
	return err.Error()
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsStorage(err error) bool    { return KindOf(err) == KindStorage }
