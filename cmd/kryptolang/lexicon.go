package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/TheusHen/kryptolang/kryptolang"
	"github.com/TheusHen/kryptolang/kryptolang/grammar"
)

// lexiconDump is the JSON printed by the lexicon command.
type lexiconDump struct {
	Fingerprint  string            `json:"fingerprint"`
	Grammar      grammar.Profile   `json:"grammar"`
	Lexicon      map[string]string `json:"lexicon"`
	Conjugations map[string]string `json:"conjugations"`
}

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Print the lexicon and grammar derived from a passphrase",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pass, err := passphrase(cmd)
		if err != nil {
			return err
		}
		s, err := kryptolang.New(pass)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(lexiconDump{
			Fingerprint:  s.Fingerprint(),
			Grammar:      s.Profile(),
			Lexicon:      s.Lexicon().Words(),
			Conjugations: s.Lexicon().Conjugations(),
		})
	},
}

func init() {
	lexiconCmd.Flags().StringP("passphrase", "k", "", "passphrase (default $"+passphraseEnv+")")
	rootCmd.AddCommand(lexiconCmd)
}
