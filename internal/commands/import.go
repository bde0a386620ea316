package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/icabanken/internal/importer"
	"github.com/cleared-dev/icabanken/internal/importlog"
	"github.com/cleared-dev/icabanken/internal/model"
)

func newImportCommand(g *globalFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Parse every export in the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.setup(cmd)
			if err != nil {
				return err
			}
			v, err := importer.ParseVariant(cfg.Import.Variant)
			if err != nil {
				return err
			}
			p := importer.DefaultRegistry().Get(importer.FormatName(v))

			files, err := importer.Scan(g.repoDir, cfg.Import.Dir)
			if err != nil {
				return err
			}
			prior, err := importlog.Read(g.repoDir)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			var entries []importlog.Entry
			skipped := 0
			for _, f := range files {
				flog := log.With().Str("file", f.Name).Logger()
				if importlog.Imported(prior, f.Name) {
					flog.Warn().Msg("already imported, skipping")
					skipped++
					continue
				}

				s, err := parseWith(p, f.Path)
				if err != nil {
					flog.Warn().Err(err).Str("format", p.Format()).Msg("not a valid export, skipping")
					color.New(color.FgRed).Fprintf(w, "%s: skipped: %v\n", f.Name, err)
					skipped++
					continue
				}

				entry := importlog.NewEntry(time.Now().UTC(), p.Format(), s)
				entries = append(entries, entry)
				fmt.Fprintf(w, "%s: %s, %d transactions", f.Name, s.Account(), s.Len())
				if entry.ClosingBalance != nil {
					fmt.Fprintf(w, ", closing balance %s", entry.ClosingBalance.StringFixed(2))
				}
				fmt.Fprintln(w)
				flog.Info().Str("account", string(s.Account())).Int("transactions", s.Len()).Msg("imported")

				if dryRun {
					continue
				}
				// Log before moving: Scan never revisits processed/.
				if err := importlog.Append(g.repoDir, []importlog.Entry{entry}); err != nil {
					return fmt.Errorf("writing import log: %w", err)
				}
				if !cfg.Import.MarkProcessed {
					continue
				}
				if err := importer.MarkProcessed(g.repoDir, cfg.Import.Dir, f.Name); err != nil {
					return err
				}
			}

			fmt.Fprintf(w, "%d imported, %d skipped\n", len(entries), skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse without moving files or writing the import log")

	return cmd
}

// parseWith opens path and parses it with p. The file is closed on return.
func parseWith(p importer.Parser, path string) (*model.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return p.Parse(f)
}
