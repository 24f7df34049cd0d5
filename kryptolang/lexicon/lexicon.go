package lexicon

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/TheusHen/kryptolang/kryptolang/keys"
)

// Suffixes appended to a verb's base word to mark tense.
const (
	PastSuffix   = "t"
	FutureSuffix = "s"
)

// maxProbes bounds the re-derivation attempts for one word.
const maxProbes = 64

var (
	ErrCollision    = errors.New("lexicon: could not synthesize a unique word")
	ErrNotInjective = errors.New("lexicon: two plain words share a synthesized word")
	ErrEmptyWord    = errors.New("lexicon: empty word")
)

// Lexicon maps plain words to synthesized words and back.
type Lexicon struct {
	words        map[string]string
	reverse      map[string]string
	conjugations map[string]string
}

// Build derives the lexicon for key.
//
// Word i is synthesized from HMAC(seed, "i"). If that word is already taken
// by an earlier entry, "i:1", "i:2", ... are tried in turn so the mapping
// stays injective.
func Build(key keys.MasterKey) (*Lexicon, error) {
	seed := key.SynthesisSeed()
	words := make(map[string]string, len(subjects)+len(coreVerbs))
	used := make(map[string]struct{}, len(subjects)+len(coreVerbs))
	conj := make(map[string]string, 3*len(coreVerbs))

	for i, plain := range Vocabulary() {
		word, err := synthesizeUnique(seed, i, used)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, plain)
		}
		used[word] = struct{}{}
		words[plain] = word
		if IsCoreVerb(plain) {
			registerConjugations(conj, word, plain)
		}
	}
	return &Lexicon{
		words:        words,
		reverse:      invert(words),
		conjugations: conj,
	}, nil
}

func synthesizeUnique(seed []byte, index int, used map[string]struct{}) (string, error) {
	msg := strconv.Itoa(index)
	for n := 0; n <= maxProbes; n++ {
		if n > 0 {
			msg = strconv.Itoa(index) + ":" + strconv.Itoa(n)
		}
		word, err := Synthesize(keys.Digest(seed, msg))
		if err != nil {
			return "", err
		}
		if _, taken := used[word]; !taken {
			return word, nil
		}
	}
	return "", ErrCollision
}

func registerConjugations(conj map[string]string, base, verb string) {
	conj[base] = verb
	conj[base+PastSuffix] = verb + "ed"
	conj[base+FutureSuffix] = "will " + verb
}

// FromMaps rebuilds a Lexicon from its wire form (plain → word and
// form → phrase). Plain words are lower-cased. The word map must be injective.
func FromMaps(words, conjugations map[string]string) (*Lexicon, error) {
	w := make(map[string]string, len(words))
	seen := make(map[string]string, len(words))
	for plain, code := range words {
		plain = strings.ToLower(plain)
		if plain == "" || code == "" {
			return nil, ErrEmptyWord
		}
		if other, ok := seen[code]; ok && other != plain {
			return nil, fmt.Errorf("%w: %q and %q -> %q", ErrNotInjective, other, plain, code)
		}
		seen[code] = plain
		w[plain] = code
	}
	c := make(map[string]string, len(conjugations))
	for form, phrase := range conjugations {
		c[form] = phrase
	}
	return &Lexicon{words: w, reverse: invert(w), conjugations: c}, nil
}

func invert(words map[string]string) map[string]string {
	out := make(map[string]string, len(words))
	for plain, code := range words {
		out[code] = plain
	}
	return out
}

// Word returns the synthesized word for a plain word.
func (l *Lexicon) Word(plain string) (string, bool) {
	w, ok := l.words[plain]
	return w, ok
}

// Plain returns the plain word for a synthesized word.
func (l *Lexicon) Plain(code string) (string, bool) {
	p, ok := l.reverse[code]
	return p, ok
}

// Conjugation returns the plain phrase for a conjugated verb form.
func (l *Lexicon) Conjugation(form string) (string, bool) {
	p, ok := l.conjugations[form]
	return p, ok
}

func (l *Lexicon) Len() int { return len(l.words) }

// Words returns a copy of the plain → synthesized mapping.
func (l *Lexicon) Words() map[string]string {
	out := make(map[string]string, len(l.words))
	for k, v := range l.words {
		out[k] = v
	}
	return out
}

// Conjugations returns a copy of the form → phrase table.
func (l *Lexicon) Conjugations() map[string]string {
	out := make(map[string]string, len(l.conjugations))
	for k, v := range l.conjugations {
		out[k] = v
	}
	return out
}
