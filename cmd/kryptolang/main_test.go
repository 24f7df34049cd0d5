package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed.
// Flags are reset first since commands are package globals.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(passphraseEnv, "")
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "kryptolang version dev\n", out)
}

func TestEncryptDecrypt(t *testing.T) {
	out, err := execute(t, "", "encrypt", "-k", "kryptolang", "You", "kill", "dog")
	require.NoError(t, err)
	assert.Equal(t, "nalir lamar-lasust\n", out)

	out, err = execute(t, "nalir lamar-lasust\n\n", "decrypt", "--passphrase", "kryptolang")
	require.NoError(t, err)
	assert.Equal(t, "You killed dog\n", out)
}

func TestEncryptReadsLines(t *testing.T) {
	out, err := execute(t, "You kill dog\ndog water\n", "encrypt", "-k", "kryptolang")
	require.NoError(t, err)
	assert.Equal(t, "nalir lamar-lasust\nENCRYPT_ERROR: Missing verb\n", out)
}

func TestEncryptProfileOverride(t *testing.T) {
	out, err := execute(t, "", "encrypt", "-k", "kryptolang", "--tense", "future", "You kill dog")
	require.NoError(t, err)
	assert.Equal(t, "nalir lamar-lasuss\n", out)

	out, err = execute(t, "", "encrypt", "-k", "kryptolang", "--syntax", "VO", "--tense", "present", "You kill dog")
	require.NoError(t, err)
	assert.Equal(t, "lamar-lasus nalir\n", out)

	_, err = execute(t, "", "encrypt", "-k", "kryptolang", "--syntax", "SVO", "You kill dog")
	assert.Error(t, err)
}

func TestEncryptPassphraseFromEnv(t *testing.T) {
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"encrypt", "You", "kill", "dog"})
	t.Setenv(passphraseEnv, "kryptolang")

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "nalir lamar-lasust\n", out.String())
}

func TestEncryptRequiresPassphrase(t *testing.T) {
	origTerm := isTerminal
	t.Cleanup(func() { isTerminal = origTerm })
	isTerminal = func(int) bool { return false }

	_, err := execute(t, "", "encrypt", "I", "eat")
	assert.True(t, errors.Is(err, errNoPassphrase), "got %v", err)
}

func TestPassphrasePrompt(t *testing.T) {
	origRead, origTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origTerm })
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("kryptolang"), nil }

	out, err := execute(t, "", "encrypt", "You", "kill", "dog")
	require.NoError(t, err)
	assert.Equal(t, "nalir lamar-lasust\n", out)

	readPassword = func(int) ([]byte, error) { return nil, nil }
	_, err = execute(t, "", "encrypt", "You", "kill", "dog")
	assert.ErrorIs(t, err, errNoPassphrase)
}

func TestLexicon(t *testing.T) {
	out, err := execute(t, "", "lexicon", "-k", "kryptolang")
	require.NoError(t, err)

	var dump struct {
		Grammar      map[string]string `json:"grammar"`
		Lexicon      map[string]string `json:"lexicon"`
		Conjugations map[string]string `json:"conjugations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &dump))
	assert.Equal(t, map[string]string{"syntax": "OV", "tense": "past"}, dump.Grammar)
	assert.Equal(t, "lamar", dump.Lexicon["you"])
	assert.Len(t, dump.Lexicon, 14)
	assert.Equal(t, "will kill", dump.Conjugations["lasuss"])
}

func TestRejectsBadTransport(t *testing.T) {
	_, err := execute(t, "", "encrypt", "-k", "kryptolang", "--transport", "smoke", "I eat")
	assert.Error(t, err)
}
