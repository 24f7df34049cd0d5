package keys

import (
	"crypto/hmac"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Digest computes HMAC-SHA3-256(seed, msg) and renders it as lower-case hex.
// The result is always 64 characters long.
func Digest(seed []byte, msg string) string {
	mac := hmac.New(sha3.New256, seed)
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}
