package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const passphraseEnv = "KRYPTOLANG_PASSPHRASE"

var errNoPassphrase = errors.New("no passphrase: use --passphrase or " + passphraseEnv)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// passphrase takes --passphrase, then $KRYPTOLANG_PASSPHRASE, then prompts
// without echo when stdin is a terminal.
func passphrase(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("passphrase"); p != "" {
		return p, nil
	}
	if p := os.Getenv(passphraseEnv); p != "" {
		return p, nil
	}
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return "", errNoPassphrase
	}

	w := cmd.ErrOrStderr()
	fmt.Fprint(w, "Passphrase: ")
	b, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", errNoPassphrase
	}
	return string(b), nil
}
