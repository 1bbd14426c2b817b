// Package cli implements the kvsml command line tool.
package cli

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"
)

// app carries the settings resolved before a subcommand runs.
type app struct {
	cfg    Config
	logger log.Logger
}

// NewRootCommand builds the command tree. Each call returns independent
// commands and flags.
func NewRootCommand() *cobra.Command {
	a := &app{cfg: DefaultConfig(), logger: log.NewNopLogger()}

	root := &cobra.Command{
		Use:   "kvsml",
		Short: "KVSML document tool",
		Long: `kvsml inspects, converts and fingerprints KVSML documents.
Arrays can be moved between inline text, external ascii files and external
binary files, optionally compressed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "Path to a YAML config file")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error, none)")

	root.AddCommand(
		newInspectCommand(a),
		newConvertCommand(a),
		newScanCommand(a),
		newDigestCommand(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		if cfg.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
			return fmt.Errorf("failed to get log level: %w", err)
		}
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg, a.logger = cfg, logger

	return nil
}

// stringFlag returns the flag value when it was set and fallback otherwise.
func stringFlag(cmd *cobra.Command, name, fallback string) (string, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", name, err)
	}

	return v, nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// ExecuteWithContext runs the root command with ctx.
func ExecuteWithContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
