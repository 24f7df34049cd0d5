package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TheusHen/kryptolang/kryptolang/cipher"
	"github.com/TheusHen/kryptolang/kryptolang/grammar"
	"github.com/TheusHen/kryptolang/kryptolang/parser"
)

var (
	ErrMissingPassphrase = errors.New("protocol: missing passphrase")
	ErrUnexpectedType    = errors.New("protocol: unexpected message type")
)

// ParseRequest asks the parser to classify text.
type ParseRequest struct {
	Text string `json:"text"`
}

type ParseResponse = parser.Parsed

// LexiconRequest asks for the lexicon of a passphrase. UniqueWords lists the
// words of the text being processed; words outside the vocabulary are echoed
// back as UnknownWords.
type LexiconRequest struct {
	Passphrase  string   `json:"passphrase"`
	UniqueWords []string `json:"unique_words"`
}

func (r LexiconRequest) Validate() error {
	if r.Passphrase == "" {
		return ErrMissingPassphrase
	}
	return nil
}

type LexiconResponse struct {
	Lexicon      map[string]string `json:"lexicon"`
	Conjugations map[string]string `json:"conjugations"`
	UnknownWords []string          `json:"unknown_words,omitempty"`
}

type GrammarRequest struct {
	Passphrase string        `json:"passphrase"`
	ParsedText ParseResponse `json:"parsed_text"`
}

func (r GrammarRequest) Validate() error {
	if r.Passphrase == "" {
		return ErrMissingPassphrase
	}
	return nil
}

type GrammarResponse = grammar.Profile

// CipherRequest carries everything the cipher needs; it never sees the
// passphrase.
type CipherRequest struct {
	Lexicon   LexiconResponse `json:"lexicon"`
	Grammar   grammar.Profile `json:"grammar"`
	Operation string          `json:"operation"`
	Text      string          `json:"text"`
}

func (r CipherRequest) Validate() error {
	if _, err := cipher.ParseOperation(r.Operation); err != nil {
		return err
	}
	return r.Grammar.Validate()
}

// CipherResponse holds the transformed text. A failed transform is still a
// successful response whose Result carries the ENCRYPT_ERROR/DECRYPT_ERROR tag.
type CipherResponse struct {
	Result string `json:"result"`
}

// ProcessRequest is the gateway request that chains all four services.
type ProcessRequest struct {
	Text       string `json:"text"`
	Passphrase string `json:"passphrase"`
	Operation  string `json:"operation"`
}

func (r ProcessRequest) Validate() error {
	if r.Passphrase == "" {
		return ErrMissingPassphrase
	}
	_, err := cipher.ParseOperation(r.Operation)
	return err
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewFrame encodes v as the JSON payload of a frame of type t.
func NewFrame(t MessageType, v any) (Frame, error) {
	if !t.valid() {
		return Frame{}, ErrInvalidType
	}
	b, err := json.Marshal(v)
	if err != nil {
		return Frame{}, err
	}
	if len(b) > MaxFramePayload {
		return Frame{}, ErrFrameTooLarge
	}
	return Frame{Type: t, Payload: b}, nil
}

// ErrorFrame wraps err in an ERROR frame.
func ErrorFrame(err error) Frame {
	b, _ := json.Marshal(ErrorResponse{Error: err.Error()})
	return Frame{Type: MessageTypeError, Payload: b}
}

// RemoteError is an error reported by the peer in an ERROR frame.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return "remote: " + e.Message }

// DecodeFrame unmarshals f into v after checking its type. An ERROR frame is
// returned as *RemoteError regardless of want.
func DecodeFrame(f Frame, want MessageType, v any) error {
	if f.Type == MessageTypeError {
		var e ErrorResponse
		if err := json.Unmarshal(f.Payload, &e); err != nil {
			return err
		}
		return &RemoteError{Message: e.Error}
	}
	if f.Type != want {
		return fmt.Errorf("%w: got %s want %s", ErrUnexpectedType, f.Type, want)
	}
	return json.Unmarshal(f.Payload, v)
}
