// Command kryptolang encrypts and decrypts sentences with a passphrase and
// serves the collaborator services over HTTP or QUIC.
package main

func main() {
	Execute()
}
