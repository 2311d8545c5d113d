// Package views renders tables and messages on a terminal and reads the
// operator's answers.
package views

import "errors"

// ErrInputClosed is raised (as a panic value) when the input stream ends in
// the middle of a prompt.
var ErrInputClosed = errors.New("input closed")

type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

// TextKind selects the syntax check PromptText applies.
type TextKind int

const (
	PlainText TextKind = iota
	EmailText
	PhoneText
	DecimalText
	IntegerText
	DateTimeText
)

// TextConstraints describes what PromptText accepts.
type TextConstraints struct {
	Kind       TextKind
	MaxLength  int // 0 means unlimited
	AllowBlank bool
}

func Required(maxLength int) TextConstraints {
	return TextConstraints{MaxLength: maxLength}
}

// Optional accepts blank input, used where blank means "keep the current value".
func Optional(kind TextKind, maxLength int) TextConstraints {
	return TextConstraints{Kind: kind, MaxLength: maxLength, AllowBlank: true}
}
