package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/icabanken/internal/buildinfo"
	"github.com/cleared-dev/icabanken/internal/config"
	"github.com/cleared-dev/icabanken/internal/logger"
)

// globalFlags are the persistent flags shared by all subcommands.
type globalFlags struct {
	repoDir  string
	logLevel string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "icabanken",
		Short:   "Parse ICA Banken transaction exports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.repoDir, "repo", ".", "repository directory holding "+config.FileName)
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newParseCommand(g))
	rootCmd.AddCommand(newIdentifyCommand(g))
	rootCmd.AddCommand(newImportCommand(g))

	return rootCmd
}

// setup loads the repo config and builds a logger writing to the command's stderr.
func (g *globalFlags) setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadOrDefault(filepath.Join(g.repoDir, config.FileName))
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("loading config: %w", err)
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, cmd.ErrOrStderr())
	return cfg, log, nil
}
