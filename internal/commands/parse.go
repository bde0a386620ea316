package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/icabanken/internal/importer"
	"github.com/cleared-dev/icabanken/internal/model"
)

const dateFormat = "2006-01-02"

func newParseCommand(g *globalFlags) *cobra.Command {
	var variant string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an export and print its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.setup(cmd)
			if err != nil {
				return err
			}
			if variant == "" {
				variant = cfg.Import.Variant
			}
			v, err := importer.ParseVariant(variant)
			if err != nil {
				return err
			}

			s, err := importer.ParseFile(args[0], v)
			if err != nil {
				log.Error().Err(err).Str("file", args[0]).Stringer("variant", v).Msg("parse failed")
				return err
			}
			log.Debug().Str("file", args[0]).Int("transactions", s.Len()).Msg("parsed")

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			return writeTable(cmd.OutOrStdout(), s)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "export variant (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func writeTable(w io.Writer, s *model.Statement) error {
	fmt.Fprintf(w, "Account: %s\n", s.Account())
	if start, ok := s.PeriodStart(); ok {
		end, _ := s.PeriodEnd()
		fmt.Fprintf(w, "Period:  %s to %s\n", start.Format(dateFormat), end.Format(dateFormat))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Date\tAmount\tBalance\t\tCounterparty\t")
	for _, t := range s.Transactions() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\t%s\t\n",
			t.Date.Format(dateFormat), t.Amount.StringFixed(2), t.RunningBalance.StringFixed(2), t.Counterparty)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Transactions: %d\n", s.Len())
	if bal, err := s.ClosingBalance(); err == nil {
		fmt.Fprintf(w, "Closing balance: %s\n", bal.StringFixed(2))
	}
	return nil
}

type jsonTransaction struct {
	Date           string `json:"date"`
	Counterparty   string `json:"counterparty"`
	Kind           string `json:"kind"`
	Category       string `json:"category"`
	Amount         string `json:"amount"`
	RunningBalance string `json:"running_balance"`
}

type jsonStatement struct {
	Account        string            `json:"account"`
	PeriodStart    string            `json:"period_start,omitempty"`
	PeriodEnd      string            `json:"period_end,omitempty"`
	File           string            `json:"file"`
	ClosingBalance string            `json:"closing_balance,omitempty"`
	Transactions   []jsonTransaction `json:"transactions"`
}

func writeJSON(w io.Writer, s *model.Statement) error {
	out := jsonStatement{
		Account:      string(s.Account()),
		File:         s.FileName(),
		Transactions: []jsonTransaction{},
	}
	if start, ok := s.PeriodStart(); ok {
		end, _ := s.PeriodEnd()
		out.PeriodStart = start.Format(dateFormat)
		out.PeriodEnd = end.Format(dateFormat)
	}
	if bal, err := s.ClosingBalance(); err == nil {
		out.ClosingBalance = bal.StringFixed(2)
	}
	for _, t := range s.Transactions() {
		out.Transactions = append(out.Transactions, jsonTransaction{
			Date:           t.Date.Format(dateFormat),
			Counterparty:   t.Counterparty,
			Kind:           t.Kind,
			Category:       t.Category,
			Amount:         t.Amount.StringFixed(2),
			RunningBalance: t.RunningBalance.StringFixed(2),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
