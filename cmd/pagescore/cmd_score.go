package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spboyer/pagescore/internal/checks"
	"github.com/spboyer/pagescore/internal/models"
	"github.com/spboyer/pagescore/internal/projectconfig"
	"github.com/spboyer/pagescore/internal/reporting"
	"github.com/spf13/cobra"
)

func newScoreCommand() *cobra.Command {
	var (
		format      string
		weightsFile string
		failUnder   string
	)

	cmd := &cobra.Command{
		Use:   "score <file>",
		Short: "Score a check-result document",
		Long: `Score one JSON or YAML document of check results.

The document has the form:

  checks:            # a list of results, or a mapping keyed by check id
    - id: title_length
      status: pass     # pass | warn | fail
      weight: 1.0      # 0..1
      label: Title length
      fix_hint: Keep titles under 60 characters.
  weights:           # optional per-check multipliers (0..10)
    title_length: 2

Weights in the document take precedence over --weights, which takes precedence
over .pagescore.yaml. Use "-" to read the document from stdin.

With --fail-under, the command exits with code 1 when the status is worse than
the given level.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return scoreCommandE(cmd, args[0], format, weightsFile, failUnder)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(reporting.FormatText),
		"Output format: text, json, markdown, html, junit")
	cmd.Flags().StringVar(&weightsFile, "weights", "", "JSON or YAML file of extra weight multipliers")
	cmd.Flags().StringVar(&failUnder, "fail-under", "", "Exit with code 1 if the status is worse than this level (red, yellow, green)")

	return cmd
}

func scoreCommandE(cmd *cobra.Command, path, format, weightsFile, failUnder string) error {
	f, err := reporting.ParseFormat(format)
	if err != nil {
		return err
	}

	var gate models.TrafficLight
	if failUnder != "" {
		if gate, err = models.ParseTrafficLight(failUnder); err != nil {
			return fmt.Errorf("--fail-under: %w", err)
		}
	}

	data, err := readDocument(cmd, path)
	if err != nil {
		return err
	}
	doc, err := checks.DecodeDocument(data)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	engine := newEngine(cfg)
	if weightsFile != "" {
		extra, err := projectconfig.LoadWeights(weightsFile)
		if err != nil {
			return err
		}
		engine = engine.WithOverrides(extra)
	}

	payload := engine.ScoreDocument(doc)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if path == "-" {
		name = "stdin"
	}
	if err := reporting.Render(cmd.OutOrStdout(), payload, f, reporting.Options{Name: name}); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if gate != "" && !payload.Status.AtLeast(gate) {
		return &StatusGateError{
			Message: fmt.Sprintf("status %s is below %s (score %d)", payload.Status, gate, payload.Score),
		}
	}
	return nil
}

// readDocument reads path, or stdin when path is "-".
func readDocument(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
