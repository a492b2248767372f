package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagescore",
		Short: "pagescore - weighted content-quality scoring",
		Long: `pagescore aggregates the results of independent content-quality checks
(title length, meta description, image alt text, ...) into a 0-100 score,
a red/yellow/green status and a list of recommendations.

Scoring is configured by a .pagescore.yaml file found in the working directory
or one of its parents. Run "pagescore init" to create one.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Directory to start the .pagescore.yaml search from (default: working directory)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMCPCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
