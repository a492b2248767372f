package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spboyer/pagescore/internal/projectconfig"
	"github.com/spboyer/pagescore/internal/wizard"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var (
		interactive bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a .pagescore.yaml with default settings",
		Long: `Create a .pagescore.yaml configuration file with the default server
settings and applicability rules.

Use --interactive to choose the port, allowed origins and optional checks.
An existing file is left alone unless --force is given; in interactive mode
you are asked before it is overwritten.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive, force)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the guided setup wizard")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .pagescore.yaml")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive, force bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	out := cmd.OutOrStdout()
	path := filepath.Join(dir, projectconfig.FileName)

	_, statErr := os.Stat(path)
	exists := statErr == nil
	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, statErr)
	}

	if exists && !force {
		if !interactive {
			fmt.Fprintf(out, "%s already exists, leaving it unchanged (use --force to overwrite)\n", path) //nolint:errcheck
			return nil
		}
		ok, err := wizard.ConfirmOverwrite(cmd.InOrStdin(), out, path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(out, "kept existing %s\n", path) //nolint:errcheck
			return nil
		}
	}

	spec := wizard.DefaultInitSpec()
	if interactive {
		var err error
		if spec, err = wizard.RunInitWizard(cmd.InOrStdin(), out, spec); err != nil {
			return err
		}
	}

	content, err := wizard.GenerateConfigYAML(spec)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", projectconfig.FileName, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(out, "Created %s\n", path) //nolint:errcheck
	return nil
}
