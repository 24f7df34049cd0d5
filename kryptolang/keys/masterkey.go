package keys

import (
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/sha3"
)

// Size is the length of a MasterKey in bytes.
const Size = 32

// Control byte offsets reused by grammar derivation.
const (
	syntaxOffset = 24
	tenseOffset  = 25
)

var ErrInvalidKeyLength = errors.New("keys: invalid master key length")

// MasterKey is the root secret of a session.
// It is defined as: MasterKey = SHA3-256(passphrase).
type MasterKey [Size]byte

// Derive hashes the UTF-8 bytes of passphrase into a MasterKey.
func Derive(passphrase string) MasterKey {
	return MasterKey(sha3.Sum256([]byte(passphrase)))
}

func ParseMasterKeyHex(s string) (MasterKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return MasterKey{}, err
	}
	if len(b) != Size {
		return MasterKey{}, ErrInvalidKeyLength
	}
	var k MasterKey
	copy(k[:], b)
	return k, nil
}

func (k MasterKey) String() string {
	return hex.EncodeToString(k[:])
}

// SynthesisSeed returns bytes [8:16], the HMAC key used for word synthesis.
func (k MasterKey) SynthesisSeed() []byte {
	seed := make([]byte, 8)
	copy(seed, k[8:16])
	return seed
}

// SyntaxByte is the control byte selecting the word order.
func (k MasterKey) SyntaxByte() byte { return k[syntaxOffset] }

// TenseByte is the control byte selecting the tense.
func (k MasterKey) TenseByte() byte { return k[tenseOffset] }

// Fingerprint returns a short identifier safe to use as a cache key or in logs.
// It never exposes the key itself.
func (k MasterKey) Fingerprint() string {
	sum := sha3.Sum256(append([]byte("kryptolang-fingerprint"), k[:]...))
	return hex.EncodeToString(sum[:8])
}
