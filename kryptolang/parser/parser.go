// Package parser splits plain text into the word classes used by the
// collaborator services.
package parser

import "strings"

var (
	pronouns = map[string]struct{}{"i": {}, "you": {}, "he": {}, "she": {}, "it": {}}
	verbs    = map[string]struct{}{"eat": {}, "kill": {}, "see": {}}
)

// Parsed is the result of Parse.
type Parsed struct {
	UniqueWords []string `json:"unique_words"`
	Subjects    []string `json:"subjects"`
	Verbs       []string `json:"verbs"`
	Objects     []string `json:"objects"`
}

// Parse lower-cases text and classifies every whitespace-separated word.
// UniqueWords keeps first-seen order; the other lists keep duplicates.
// Only pronouns count as subjects here, unlike the cipher which accepts any
// vocabulary noun.
func Parse(text string) Parsed {
	words := strings.Fields(strings.ToLower(text))
	p := Parsed{
		UniqueWords: make([]string, 0, len(words)),
		Subjects:    []string{},
		Verbs:       []string{},
		Objects:     []string{},
	}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, ok := seen[w]; !ok {
			seen[w] = struct{}{}
			p.UniqueWords = append(p.UniqueWords, w)
		}
		_, isPronoun := pronouns[w]
		_, isVerb := verbs[w]
		switch {
		case isPronoun:
			p.Subjects = append(p.Subjects, w)
		case isVerb:
			p.Verbs = append(p.Verbs, w)
		default:
			p.Objects = append(p.Objects, w)
		}
	}
	return p
}
