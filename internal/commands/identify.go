package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/icabanken/internal/importer"
)

func newIdentifyCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "identify <file>...",
		Short: "Report which export format each file matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := g.setup(cmd)
			if err != nil {
				return err
			}

			reg := importer.DefaultRegistry()
			ok := color.New(color.FgGreen)
			miss := color.New(color.FgRed)
			w := cmd.OutOrStdout()

			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				p := reg.Detect(data)
				if p == nil {
					log.Debug().Str("file", path).Msg("no parser matched")
					miss.Fprintf(w, "%s: unrecognized\n", path)
					continue
				}
				ok.Fprintf(w, "%s: %s\n", path, p.Format())
			}
			return nil
		},
	}
}
