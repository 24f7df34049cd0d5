package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheusHen/kryptolang/kryptolang"
	"github.com/TheusHen/kryptolang/kryptolang/cipher"
	"github.com/TheusHen/kryptolang/kryptolang/config"
	"github.com/TheusHen/kryptolang/kryptolang/grammar"
	"github.com/TheusHen/kryptolang/kryptolang/protocol"
	httptransport "github.com/TheusHen/kryptolang/kryptolang/transport/http"
	quictransport "github.com/TheusHen/kryptolang/kryptolang/transport/quic"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [sentence...]",
	Short: "Encrypt a sentence",
	Long: `Encrypt the sentence given as arguments, or every line of standard input
when no arguments are given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(cmd, args, cipher.Encrypt)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [ciphertext...]",
	Short: "Decrypt a ciphertext",
	Long: `Decrypt the ciphertext given as arguments, or every line of standard input
when no arguments are given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(cmd, args, cipher.Decrypt)
	},
}

func init() {
	for _, c := range []*cobra.Command{encryptCmd, decryptCmd} {
		c.Flags().StringP("passphrase", "k", "", "passphrase (default $"+passphraseEnv+")")
		c.Flags().String("syntax", "", "override the derived word order (VO, OV)")
		c.Flags().String("tense", "", "override the derived tense (past, present, future)")
		c.Flags().Bool("remote", false, "send the request to the configured gateway")
		c.Flags().Duration("timeout", 10*time.Second, "remote request timeout")
		rootCmd.AddCommand(c)
	}
}

// inputs returns the joined arguments, or the non-empty lines of r.
func inputs(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// transformer turns one input line into one output line.
type transformer func(ctx context.Context, text string) (string, error)

func runCipher(cmd *cobra.Command, args []string, op cipher.Operation) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pass, err := passphrase(cmd)
	if err != nil {
		return err
	}
	lines, err := inputs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var run transformer
	stop := func() error { return nil }
	if remote, _ := cmd.Flags().GetBool("remote"); remote {
		if cmd.Flags().Changed("syntax") || cmd.Flags().Changed("tense") {
			return errors.New("--syntax and --tense only apply to local sessions")
		}
		run, stop = remoteTransformer(cfg, pass, op)
		logger.Debug("using remote gateway", "transport", cfg.Transport)
	} else {
		run, err = localTransformer(cmd, pass, op)
	}
	if err != nil {
		return err
	}
	defer stop()

	timeout, _ := cmd.Flags().GetDuration("timeout")
	out := cmd.OutOrStdout()
	for _, line := range lines {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		res, err := run(ctx, line)
		cancel()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, res)
	}
	return nil
}

func localTransformer(cmd *cobra.Command, pass string, op cipher.Operation) (transformer, error) {
	s, err := kryptolang.New(pass)
	if err != nil {
		return nil, err
	}
	profile, err := profileOverride(cmd, s.Profile())
	if err != nil {
		return nil, err
	}
	if err := s.OverrideProfile(profile); err != nil {
		return nil, err
	}
	return func(_ context.Context, text string) (string, error) {
		return s.Run(op, text), nil
	}, nil
}

// profileOverride applies --syntax and --tense on top of p.
func profileOverride(cmd *cobra.Command, p grammar.Profile) (grammar.Profile, error) {
	if v, _ := cmd.Flags().GetString("syntax"); v != "" {
		syn, err := grammar.ParseSyntax(v)
		if err != nil {
			return p, err
		}
		p.Syntax = syn
	}
	if v, _ := cmd.Flags().GetString("tense"); v != "" {
		tense, err := grammar.ParseTense(v)
		if err != nil {
			return p, err
		}
		p.Tense = tense
	}
	return p, nil
}

type gatewayClient interface {
	Process(ctx context.Context, req protocol.ProcessRequest) (protocol.CipherResponse, error)
}

// remoteTransformer calls the gateway found in cfg. The returned func
// releases the client.
func remoteTransformer(cfg *config.Config, pass string, op cipher.Operation) (transformer, func() error) {
	var gw gatewayClient
	stop := func() error { return nil }
	switch cfg.Transport {
	case config.TransportQUIC:
		c := quictransport.NewClient(cfg.Resolver())
		gw, stop = c, c.Close
	default:
		gw = httptransport.NewClient(cfg.Resolver(), nil)
	}
	return func(ctx context.Context, text string) (string, error) {
		resp, err := gw.Process(ctx, protocol.ProcessRequest{
			Text:       text,
			Passphrase: pass,
			Operation:  op.String(),
		})
		return resp.Result, err
	}, stop
}
