package cipher

import "fmt"

// Operation is the direction of a transform.
type Operation uint8

const (
	Encrypt Operation = iota + 1
	Decrypt
)

func (o Operation) String() string {
	switch o {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return "unknown"
	}
}

func ParseOperation(s string) (Operation, error) {
	switch s {
	case "encrypt":
		return Encrypt, nil
	case "decrypt":
		return Decrypt, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
}

// ErrorPrefix is the tag that marks a failed transform on the wire.
func (o Operation) ErrorPrefix() string {
	if o == Decrypt {
		return "DECRYPT_ERROR: "
	}
	return "ENCRYPT_ERROR: "
}

// Result is either transformed text or a parsing failure.
type Result struct {
	Text string
	Err  *Error
}

func succeed(text string) Result { return Result{Text: text} }

func fail(err *Error) Result { return Result{Err: err} }

func (r Result) OK() bool { return r.Err == nil }

// Format renders the result the way it travels on the wire: the text on
// success, the operation's error prefix plus detail on failure.
func (r Result) Format(op Operation) string {
	if r.Err != nil {
		return op.ErrorPrefix() + r.Err.Detail
	}
	return r.Text
}
