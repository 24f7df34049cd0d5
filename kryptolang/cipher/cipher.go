package cipher

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/TheusHen/kryptolang/kryptolang/grammar"
	"github.com/TheusHen/kryptolang/kryptolang/lexicon"
)

// separator joins the subject code and the verb form in the verb phrase.
const separator = "-"

// Cipher encodes and decodes sentences. It holds no mutable state and is
// safe for concurrent use.
type Cipher struct {
	lex     *lexicon.Lexicon
	profile grammar.Profile
}

func New(lex *lexicon.Lexicon, profile grammar.Profile) *Cipher {
	return &Cipher{lex: lex, profile: profile}
}

func (c *Cipher) Profile() grammar.Profile { return c.profile }

// Encrypt encodes text and renders failures with the ENCRYPT_ERROR prefix.
func (c *Cipher) Encrypt(text string) string { return c.Encode(text).Format(Encrypt) }

// Decrypt decodes ciphertext and renders failures with the DECRYPT_ERROR prefix.
func (c *Cipher) Decrypt(ciphertext string) string { return c.Decode(ciphertext).Format(Decrypt) }

// Run dispatches on op. An unknown op is treated as encrypt.
func (c *Cipher) Run(op Operation, text string) string {
	if op == Decrypt {
		return c.Decrypt(text)
	}
	return c.Encrypt(text)
}

// Encode turns a plain sentence into ciphertext.
func (c *Cipher) Encode(text string) Result {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return fail(ErrEmptyInput)
	}

	subjectIdx := -1
	var subjectCode string
	for i, w := range words {
		if !lexicon.IsSubject(w) {
			continue
		}
		if code, ok := c.lex.Word(w); ok {
			subjectIdx, subjectCode = i, code
			break
		}
	}
	if subjectIdx < 0 {
		return fail(ErrMissingSubject)
	}
	if subjectIdx+1 >= len(words) {
		return fail(ErrMissingVerb)
	}

	verb := words[subjectIdx+1]
	verbPhrase := subjectCode + separator + c.verbForm(verb)

	objects := words[subjectIdx+2:]
	coded := make([]string, len(objects))
	for i, w := range objects {
		coded[i] = c.substitute(w)
	}
	objectPhrase := strings.Join(coded, " ")

	var first, second string
	if c.profile.Syntax == grammar.OV {
		first, second = objectPhrase, verbPhrase
	} else {
		first, second = verbPhrase, objectPhrase
	}
	return succeed(joinNonEmpty(first, second))
}

// verbForm conjugates core verbs for the profile's tense. Any other verb is
// passed through as typed.
func (c *Cipher) verbForm(verb string) string {
	if !lexicon.IsCoreVerb(verb) {
		return verb
	}
	base := c.substitute(verb)
	switch c.profile.Tense {
	case grammar.Past:
		return base + lexicon.PastSuffix
	case grammar.Future:
		return base + lexicon.FutureSuffix
	default:
		return base
	}
}

func (c *Cipher) substitute(w string) string {
	if code, ok := c.lex.Word(w); ok {
		return code
	}
	return w
}

// Decode turns ciphertext back into a plain sentence.
//
// The first token containing the separator is the verb phrase. Without one
// the whole input is decoded as object words.
func (c *Cipher) Decode(ciphertext string) Result {
	if !utf8.ValidString(ciphertext) {
		return fail(ErrMalformedCiphertext)
	}
	tokens := strings.Fields(ciphertext)

	var subject, verb string
	for i, tok := range tokens {
		code, form, found := strings.Cut(tok, separator)
		if !found {
			continue
		}
		plain, ok := c.lex.Plain(code)
		if !ok {
			return fail(unknownSubject(code))
		}
		subject = capitalize(plain)
		verb = c.resolveVerb(form)
		tokens = append(tokens[:i:i], tokens[i+1:]...)
		break
	}

	objects := make([]string, len(tokens))
	for i, tok := range tokens {
		objects[i] = c.restore(tok)
	}
	return succeed(joinNonEmpty(subject, verb, strings.Join(objects, " ")))
}

// resolveVerb maps a verb form back to plain text. An exact conjugation wins;
// otherwise a trailing past or future marker is stripped and re-applied to
// whatever the remainder resolves to.
func (c *Cipher) resolveVerb(form string) string {
	if phrase, ok := c.lex.Conjugation(form); ok {
		return phrase
	}
	switch {
	case strings.HasSuffix(form, lexicon.PastSuffix):
		return c.conjugationOr(strings.TrimSuffix(form, lexicon.PastSuffix)) + "ed"
	case strings.HasSuffix(form, lexicon.FutureSuffix):
		return "will " + c.conjugationOr(strings.TrimSuffix(form, lexicon.FutureSuffix))
	default:
		return c.restore(form)
	}
}

func (c *Cipher) conjugationOr(base string) string {
	if phrase, ok := c.lex.Conjugation(base); ok {
		return phrase
	}
	return base
}

func (c *Cipher) restore(code string) string {
	if plain, ok := c.lex.Plain(code); ok {
		return plain
	}
	return code
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
