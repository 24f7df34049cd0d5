package lexicon

import (
	"errors"
	"fmt"
)

const (
	// MaxWordLength is the length of every synthesized word.
	MaxWordLength = 5
	// walkLength is how many digest characters are turned into letters
	// before truncation.
	walkLength = 10
)

var (
	consonants = [...]byte{'p', 't', 'k', 's', 'm', 'n', 'l', 'r'}
	vowels     = [...]byte{'a', 'i', 'u'}
)

var (
	ErrShortDigest   = errors.New("lexicon: digest shorter than 10 characters")
	ErrInvalidDigest = errors.New("lexicon: digest is not lower-case hex")
)

// Synthesize turns a hex digest into a pronounceable word.
// Even positions pick a consonant (digit mod 8), odd positions a vowel
// (digit mod 3).
func Synthesize(digest string) (string, error) {
	if len(digest) < walkLength {
		return "", ErrShortDigest
	}
	var buf [walkLength]byte
	for p := 0; p < walkLength; p++ {
		d, err := hexDigit(digest[p])
		if err != nil {
			return "", err
		}
		if p%2 == 0 {
			buf[p] = consonants[d%len(consonants)]
		} else {
			buf[p] = vowels[d%len(vowels)]
		}
	}
	return string(buf[:MaxWordLength]), nil
}

func hexDigit(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDigest, c)
	}
}
