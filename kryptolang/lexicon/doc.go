// Package lexicon builds the private vocabulary of a kryptolang session.
//
// Every entry of the fixed vocabulary is given a synthesized five-letter word
// (consonant, vowel, consonant, vowel, consonant) drawn from an HMAC-SHA3-256
// digest keyed by the session's master key. Core verbs additionally get
// past and future forms made by appending a single letter to their base word.
//
// A Lexicon is immutable once built and safe for concurrent readers.
package lexicon
