package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheusHen/kryptolang/kryptolang/config"
	"github.com/TheusHen/kryptolang/kryptolang/logging"
)

var rootCmd = &cobra.Command{
	Use:   "kryptolang",
	Short: "kryptolang is a passphrase-keyed natural-language cipher",
	Long: `kryptolang derives a private lexicon and grammar from a passphrase and uses
them to rewrite short subject-verb-object sentences into an invented language.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("transport", "", "transport used to serve or reach services (http, quic)")
}

// loadConfig reads the configuration file and applies the persistent flag
// overrides, then builds the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("transport") {
		cfg.Transport, _ = cmd.Flags().GetString("transport")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(os.Stderr, level), nil
}
