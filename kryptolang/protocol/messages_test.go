package protocol

import (
	"errors"
	"testing"

	"github.com/TheusHen/kryptolang/kryptolang/cipher"
	"github.com/TheusHen/kryptolang/kryptolang/grammar"
)

func TestNewFrameDecodeFrame(t *testing.T) {
	req := CipherRequest{
		Lexicon:   LexiconResponse{Lexicon: map[string]string{"i": "pipun"}},
		Grammar:   grammar.Profile{Syntax: grammar.OV, Tense: grammar.Future},
		Operation: "encrypt",
		Text:      "I eat",
	}
	f, err := NewFrame(MessageTypeCipher, req)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	var got CipherRequest
	if err := DecodeFrame(f, MessageTypeCipher, &got); err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if got.Grammar != req.Grammar || got.Text != req.Text || got.Lexicon.Lexicon["i"] != "pipun" {
		t.Fatalf("decoded request mismatch: %+v", got)
	}

	if err := DecodeFrame(f, MessageTypeParse, &got); !errors.Is(err, ErrUnexpectedType) {
		t.Fatalf("expected ErrUnexpectedType, got %v", err)
	}
}

func TestErrorFrame(t *testing.T) {
	f := ErrorFrame(errors.New("boom"))
	var v CipherResponse
	err := DecodeFrame(f, MessageTypeResult, &v)
	var remote *RemoteError
	if !errors.As(err, &remote) || remote.Message != "boom" {
		t.Fatalf("expected RemoteError(boom), got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := (LexiconRequest{}).Validate(); err != ErrMissingPassphrase {
		t.Fatalf("expected ErrMissingPassphrase, got %v", err)
	}
	if err := (GrammarRequest{}).Validate(); err != ErrMissingPassphrase {
		t.Fatalf("expected ErrMissingPassphrase, got %v", err)
	}
	if err := (ProcessRequest{Passphrase: "p", Operation: "shred"}).Validate(); !errors.Is(err, cipher.ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
	if err := (CipherRequest{Operation: "decrypt"}).Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
