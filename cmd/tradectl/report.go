package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndewijer/TradeTrack-Backend/internal/model"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect MT5 HTML reports",
	}

	cmd.AddCommand(newReportParseCmd())

	return cmd
}

func newReportParseCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "parse <report.html>",
		Short: "Decode the closed trades of an MT5 report and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open report: %w", err)
			}
			defer f.Close()

			trades, err := service.DecodeReport(f.Name(), f, account)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			return writeJSON(cmd.OutOrStdout(), trades)
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", model.DefaultAccounts()[0].Name, "account the trades are booked to")

	return cmd
}
