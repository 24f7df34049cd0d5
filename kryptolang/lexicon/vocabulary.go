package lexicon

// Plain words are stored lower-case; callers normalise input before lookup.
var subjects = [...]string{
	"i", "you", "dog", "man", "woman",
	"tree", "water", "fire", "sun", "moon", "meat",
}

var coreVerbs = [...]string{"eat", "kill", "see"}

// Subjects returns the nouns and pronouns that may start a sentence.
func Subjects() []string {
	out := make([]string, len(subjects))
	copy(out, subjects[:])
	return out
}

// CoreVerbs returns the verbs that carry tense conjugations.
func CoreVerbs() []string {
	out := make([]string, len(coreVerbs))
	copy(out, coreVerbs[:])
	return out
}

// Vocabulary returns subjects followed by core verbs. The position of a word
// in this list is the ordinal fed to word synthesis, so the order is part of
// the key schedule and must never change.
func Vocabulary() []string {
	out := make([]string, 0, len(subjects)+len(coreVerbs))
	out = append(out, subjects[:]...)
	return append(out, coreVerbs[:]...)
}

func IsSubject(word string) bool {
	for _, s := range subjects {
		if s == word {
			return true
		}
	}
	return false
}

func IsCoreVerb(word string) bool {
	for _, v := range coreVerbs {
		if v == word {
			return true
		}
	}
	return false
}
