// Package cipher transforms subject-verb-object sentences with a lexicon and
// a grammar profile.
//
// Encoding picks the first known subject, takes the next token as the verb
// and everything after it as objects:
//
//	"You kill dog"  --(OV, past)-->  "<dog> <you>-<kill>t"
//
// Words outside the lexicon pass through unchanged in both directions.
//
// Parsing failures are reported as a Result carrying an *Error. The string
// entry points (Encrypt, Decrypt, Run) never fail; they render errors as
// "ENCRYPT_ERROR: <detail>" or "DECRYPT_ERROR: <detail>".
package cipher
