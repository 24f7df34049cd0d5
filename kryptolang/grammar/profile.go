// Package grammar derives the word order and tense of a kryptolang session.
package grammar

import (
	"errors"
	"fmt"

	"github.com/TheusHen/kryptolang/kryptolang/keys"
)

var (
	ErrUnknownSyntax = errors.New("grammar: unknown syntax")
	ErrUnknownTense  = errors.New("grammar: unknown tense")
)

// Syntax is the relative order of the verb phrase and the object phrase.
type Syntax uint8

const (
	VO Syntax = iota // verb phrase first
	OV               // object phrase first
)

func (s Syntax) String() string {
	switch s {
	case VO:
		return "VO"
	case OV:
		return "OV"
	default:
		return "UNKNOWN"
	}
}

func ParseSyntax(s string) (Syntax, error) {
	switch s {
	case "VO":
		return VO, nil
	case "OV":
		return OV, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSyntax, s)
	}
}

func (s Syntax) MarshalText() ([]byte, error) {
	if s > OV {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSyntax, s)
	}
	return []byte(s.String()), nil
}

func (s *Syntax) UnmarshalText(b []byte) error {
	v, err := ParseSyntax(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Tense selects the conjugated form of core verbs.
// The ordinals are fixed: past=0, present=1, future=2.
type Tense uint8

const (
	Past Tense = iota
	Present
	Future
)

func (t Tense) String() string {
	switch t {
	case Past:
		return "past"
	case Present:
		return "present"
	case Future:
		return "future"
	default:
		return "unknown"
	}
}

func ParseTense(s string) (Tense, error) {
	switch s {
	case "past":
		return Past, nil
	case "present":
		return Present, nil
	case "future":
		return Future, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTense, s)
	}
}

func (t Tense) MarshalText() ([]byte, error) {
	if t > Future {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTense, t)
	}
	return []byte(t.String()), nil
}

func (t *Tense) UnmarshalText(b []byte) error {
	v, err := ParseTense(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Profile is the grammar of a session. It serialises as
// {"syntax": "VO"|"OV", "tense": "past"|"present"|"future"}.
type Profile struct {
	Syntax Syntax `json:"syntax"`
	Tense  Tense  `json:"tense"`
}

// Derive reads the profile from the key's control bytes: syntax from the
// parity of byte 24, tense from byte 25 mod 3.
func Derive(key keys.MasterKey) Profile {
	return Profile{
		Syntax: Syntax(key.SyntaxByte() % 2),
		Tense:  Tense(key.TenseByte() % 3),
	}
}

// Validate reports whether both fields hold known values.
func (p Profile) Validate() error {
	if p.Syntax > OV {
		return fmt.Errorf("%w: %d", ErrUnknownSyntax, p.Syntax)
	}
	if p.Tense > Future {
		return fmt.Errorf("%w: %d", ErrUnknownTense, p.Tense)
	}
	return nil
}

func (p Profile) String() string {
	return p.Syntax.String() + "/" + p.Tense.String()
}
