package cipher

import (
	"errors"
	"fmt"
)

// Kind classifies a cipher failure.
type Kind uint8

const (
	EmptyInput Kind = iota + 1
	MissingSubject
	MissingVerb
	UnknownSubjectCode
	MalformedCiphertext
)

func (k Kind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case MissingSubject:
		return "MissingSubject"
	case MissingVerb:
		return "MissingVerb"
	case UnknownSubjectCode:
		return "UnknownSubjectCode"
	case MalformedCiphertext:
		return "MalformedCiphertext"
	default:
		return "Unknown"
	}
}

// Error is a parsing failure. Detail is the text placed after the
// ENCRYPT_ERROR / DECRYPT_ERROR prefix.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// Is matches on Kind so that errors.Is(err, ErrUnknownSubjectCode) holds for
// any unknown code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmptyInput          = &Error{Kind: EmptyInput, Detail: "Empty input"}
	ErrMissingSubject      = &Error{Kind: MissingSubject, Detail: "Missing valid subject (I/you/noun)"}
	ErrMissingVerb         = &Error{Kind: MissingVerb, Detail: "Missing verb"}
	ErrUnknownSubjectCode  = &Error{Kind: UnknownSubjectCode, Detail: "unknown subject code"}
	ErrMalformedCiphertext = &Error{Kind: MalformedCiphertext, Detail: "ciphertext is not valid UTF-8"}

	ErrUnknownOperation = errors.New("cipher: unknown operation")
)

func unknownSubject(code string) *Error {
	return &Error{Kind: UnknownSubjectCode, Detail: fmt.Sprintf("unknown subject code %q", code)}
}
