// Package keys derives the master key of a kryptolang session.
//
// A passphrase is hashed once with SHA3-256. Fixed byte ranges of the
// resulting key are then reused by the rest of the system:
//   - bytes [8:16] seed word synthesis (HMAC-SHA3-256)
//   - byte 24 selects the word order
//   - byte 25 selects the tense
package keys
