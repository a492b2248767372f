package main

import (
	"fmt"

	"github.com/spboyer/pagescore/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var asConfig bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a score document or config file against its JSON Schema",
		Long: `Validate a score document strictly against the pagescore JSON Schema and
print every violation. Scoring itself is lenient and skips malformed entries;
validate is meant for catching those problems before they are silently ignored.

Use --config to validate a .pagescore.yaml file instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := validation.KindDocument
			if asConfig {
				kind = validation.KindConfig
			}
			return validateCommandE(cmd, args[0], kind)
		},
	}

	cmd.Flags().BoolVar(&asConfig, "config", false, "Validate as a .pagescore.yaml config file")

	return cmd
}

func validateCommandE(cmd *cobra.Command, path string, kind validation.Kind) error {
	errs, err := validation.ValidateFile(path, kind)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(errs) == 0 {
		fmt.Fprintf(out, "✅ %s is a valid %s\n", path, kind) //nolint:errcheck
		return nil
	}

	fmt.Fprintf(out, "❌ %s has %d schema violation(s):\n", path, len(errs)) //nolint:errcheck
	for _, e := range errs {
		fmt.Fprintf(out, "  - %s\n", e) //nolint:errcheck
	}
	return fmt.Errorf("%s failed validation", path)
}
