package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/internal/cli"
	"github.com/aretw0/morph/pkg/observability"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "morph",
	Short: "Morph samples declarative property transitions",
	Long: `Morph compiles animation documents (YAML or JSON transition trees over a
scene of nodes) and sweeps them frame by frame, printing how every property
moves between its start and end edge.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("dir", ".", "Directory containing stored documents")
	flags.Bool("debug", false, "Log every animation event")
	flags.String("log-format", "text", "Log format: 'text' or 'json'")
	flags.String("redis-addr", "", "Store documents in Redis at this address instead of --dir")
	flags.String("redis-password", "", "Redis password")
	flags.Int("redis-db", 0, "Redis database")
	flags.String("redis-prefix", "", "Redis key prefix for documents")
	flags.String("encryption-key", os.Getenv("MORPH_ENCRYPTION_KEY"), "Encrypt stored documents with this 32-byte key (hex or base64)")
}

// options reads the persistent flags.
func options(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	var opts cli.Options
	opts.Dir, _ = flags.GetString("dir")
	opts.Debug, _ = flags.GetBool("debug")
	opts.LogFormat, _ = flags.GetString("log-format")
	opts.RedisAddr, _ = flags.GetString("redis-addr")
	opts.RedisPassword, _ = flags.GetString("redis-password")
	opts.RedisDB, _ = flags.GetInt("redis-db")
	opts.RedisPrefix, _ = flags.GetString("redis-prefix")
	opts.EncryptionKey, _ = flags.GetString("encryption-key")
	return opts
}

// setup builds the logger and engine for a command.
func setup(cmd *cobra.Command, metrics *observability.Metrics) (*morph.Engine, *slog.Logger, error) {
	opts := options(cmd)
	opts.Metrics = metrics

	logger, err := cli.CreateLogger(opts)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)

	eng, err := cli.CreateEngine(opts, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing morph: %w", err)
	}
	return eng, logger, nil
}

// document returns the document named by --name, or read from the first
// argument ("-" for stdin).
func document(cmd *cobra.Command, eng *morph.Engine, args []string) ([]byte, error) {
	name, _ := cmd.Flags().GetString("name")
	switch {
	case name != "":
		return eng.Load(cmd.Context(), name)
	case len(args) > 0:
		return cli.ReadDocument(args[0], cmd.InOrStdin())
	}
	return nil, fmt.Errorf("a document file, '-' or --name is required")
}
