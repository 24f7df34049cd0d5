package kryptolang

import (
	"errors"

	"github.com/TheusHen/kryptolang/kryptolang/cipher"
	"github.com/TheusHen/kryptolang/kryptolang/grammar"
	"github.com/TheusHen/kryptolang/kryptolang/keys"
	"github.com/TheusHen/kryptolang/kryptolang/lexicon"
)

var ErrEmptyPassphrase = errors.New("kryptolang: empty passphrase")

// Session is the derived state of one passphrase.
//
// Encrypt and Decrypt may be called concurrently. OverrideProfile must not
// run concurrently with them.
type Session struct {
	key    keys.MasterKey
	lex    *lexicon.Lexicon
	cipher *cipher.Cipher
}

// New derives a Session from passphrase.
func New(passphrase string) (*Session, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	return FromKey(keys.Derive(passphrase))
}

// FromKey derives a Session from an already computed master key.
func FromKey(key keys.MasterKey) (*Session, error) {
	lex, err := lexicon.Build(key)
	if err != nil {
		return nil, err
	}
	return &Session{
		key:    key,
		lex:    lex,
		cipher: cipher.New(lex, grammar.Derive(key)),
	}, nil
}

// Encrypt encodes a plain sentence. Failures are returned as a string
// starting with "ENCRYPT_ERROR: ".
func (s *Session) Encrypt(text string) string { return s.cipher.Encrypt(text) }

// Decrypt decodes ciphertext. Failures are returned as a string starting
// with "DECRYPT_ERROR: ".
func (s *Session) Decrypt(ciphertext string) string { return s.cipher.Decrypt(ciphertext) }

// Run dispatches to Encrypt or Decrypt.
func (s *Session) Run(op cipher.Operation, text string) string { return s.cipher.Run(op, text) }

// OverrideProfile replaces the grammar profile without touching the lexicon.
// It is not safe to call while other goroutines use the session.
func (s *Session) OverrideProfile(p grammar.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.cipher = cipher.New(s.lex, p)
	return nil
}

func (s *Session) Profile() grammar.Profile { return s.cipher.Profile() }

func (s *Session) Lexicon() *lexicon.Lexicon { return s.lex }

// Fingerprint identifies the session's key without revealing it.
func (s *Session) Fingerprint() string { return s.key.Fingerprint() }
