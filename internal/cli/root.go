package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "gomemo",
		Short: "CLI tool for the gomemo replay trainer",
		Long: `gomemo is a CLI tool for the gomemo JSON API.

Import SGF game records, step through them, then replay them from memory
with progressively narrower hints after each wrong move. The current
session is remembered between invocations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load session from file if not provided via flag/env
			if err := cfg.LoadSession(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.Verbose, cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: GOMEMO_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionID, "session", cfg.SessionID, "Session ID (env: GOMEMO_SESSION)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "File remembering the current session (env: GOMEMO_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newStudyCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newPassCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newHintCmd())
	rootCmd.AddCommand(newDifficultCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newEventsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
