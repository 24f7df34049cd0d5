// Package kryptolang provides a deterministic, passphrase-keyed substitution
// cipher over a tiny natural-language vocabulary.
//
// A passphrase is hashed into a master key, which seeds a private lexicon (a
// synthesized word for every vocabulary entry plus conjugated verb forms) and
// a grammar profile (word order and tense). A Session bundles all of it and
// transforms short subject-verb-object sentences in both directions.
//
// kryptolang is not a secure cipher. The vocabulary has fourteen words and
// the output preserves sentence structure.
package kryptolang
