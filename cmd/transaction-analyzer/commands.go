package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/transaction-analyzer/internal/logger"
	"github.com/example/transaction-analyzer/internal/quotes"
	"github.com/example/transaction-analyzer/internal/report"
	"github.com/example/transaction-analyzer/internal/views"
)

func newHomeCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "home",
		Short: "Show the dashboard: greeting, cards, top transactions and quotes",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			var at any = svc.Now()
			if date != "" {
				at = date
			}

			home := &views.Home{
				Service:    svc,
				Currencies: a.cfg.UserCurrencies,
				Stocks:     a.cfg.UserStocks,
				Log:        a.logs.For(logger.ComponentViews),
			}
			if len(a.cfg.UserCurrencies) > 0 || len(a.cfg.UserStocks) > 0 {
				p := quotes.NewHTTPProvider(a.cfg.Quotes.Timeout, a.logs.For(logger.ComponentQuotes))
				p.CurrencyBaseURL = a.cfg.Quotes.CurrencyBaseURL
				p.CurrencyAPIKey = a.cfg.CurrencyAPIKey()
				p.TargetCurrency = a.cfg.Quotes.TargetCurrency
				p.StockBaseURL = a.cfg.Quotes.StockBaseURL
				p.StockAPIKey = a.cfg.StockAPIKey()
				home.Quotes = p
			}

			return printJSON(cmd, home.Build(cmd.Context(), at))
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "reference date, DD.MM.YYYY[ HH:MM:SS] (default now)")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find transactions whose category or description contains the query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			out, err := svc.SimpleSearch(args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd, out)
		},
	}
}

func newTransfersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "transfers",
		Short: "List transfers to private persons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			out, err := svc.PhysicalTransfers()
			if err != nil {
				return err
			}
			return printRaw(cmd, out)
		},
	}
}

func newSpendingCmd(a *app) *cobra.Command {
	var (
		category string
		date     string
		out      string
		save     bool
	)
	cmd := &cobra.Command{
		Use:   "spending",
		Short: "Show a category's spending over the 90 days before a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []report.Record
			if svc, err := a.service(cmd); err != nil {
				records = report.ErrorMarker(err)
			} else {
				var asOf any
				if date != "" {
					asOf = date
				}
				records = svc.SpendingReport(category, asOf)
			}

			if save || out != "" {
				log := a.logs.For(logger.ComponentReports)
				path, err := report.SaveReport(records, out, a.cfg.Reports.Dir, time.Now())
				if err != nil {
					log.Error().Err(err).Msg("failed to save report")
					return err
				}
				log.Info().Str("path", path).Msg("report saved")
			}
			return printJSON(cmd, records)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category to report on")
	cmd.Flags().StringVarP(&date, "date", "d", "", "reference date, DD.MM.YYYY (default now)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to this file")
	cmd.Flags().BoolVar(&save, "save", false, "write the report to a timestamped file in reports.dir")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := report.EncodeJSON(v)
	if err != nil {
		return err
	}
	return printRaw(cmd, data)
}

// printRaw prints encoded JSON; a nil result prints as an empty list.
func printRaw(cmd *cobra.Command, data []byte) error {
	if data == nil {
		data = []byte("[]")
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
