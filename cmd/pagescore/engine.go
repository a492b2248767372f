package main

import (
	"fmt"
	"log/slog"

	"github.com/spboyer/pagescore/internal/projectconfig"
	"github.com/spboyer/pagescore/internal/scoring"
	"github.com/spf13/cobra"
)

// loadProjectConfig loads .pagescore.yaml starting from --config-dir.
func loadProjectConfig(cmd *cobra.Command) (*projectconfig.ProjectConfig, error) {
	dir, _ := cmd.Flags().GetString("config-dir")
	if dir == "" {
		dir = "."
	}
	cfg, err := projectconfig.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	return cfg, nil
}

// newEngine builds the scoring engine described by cfg.
func newEngine(cfg *projectconfig.ProjectConfig) *scoring.Engine {
	return scoring.NewEngine(
		scoring.WithWeights(cfg.WeightProvider()),
		scoring.WithRules(cfg.Rules()),
		scoring.WithLogger(slog.Default()),
	)
}
