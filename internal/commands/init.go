package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/icabanken/internal/config"
	"github.com/cleared-dev/icabanken/internal/importer"
)

func newInitCommand() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize an import directory and " + config.FileName,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			v, err := importer.ParseVariant(variant)
			if err != nil {
				return err
			}

			if err := runInit(absDir, v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized icabanken project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", importer.WithPeriod.String(), "export variant (with-period, without-period)")

	return cmd
}

func runInit(dir string, variant importer.Variant) error {
	cfg := config.Default()
	cfg.Import.Variant = variant.String()

	dirs := []string{
		cfg.Import.Dir,
		filepath.Join(cfg.Import.Dir, "processed"),
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, cfg.Import.Dir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}
	return nil
}
