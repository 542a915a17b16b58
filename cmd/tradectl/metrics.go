package main

import (
	"fmt"
	"os"

	"github.com/fernet/fernet-go"
	"github.com/spf13/cobra"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/request"
	"github.com/ndewijer/TradeTrack-Backend/internal/metrics"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
)

func newMetricsCmd() *cobra.Command {
	var (
		account string
		market  string
		side    string
		from    string
		to      string
		key     string
	)

	cmd := &cobra.Command{
		Use:   "metrics <backup.json>",
		Short: "Print the dashboard of a backup file as JSON",
		Long: `Metrics reads an exported or scheduled backup and prints the same
dashboard the API serves. Sealed snapshots need the key they were written with.

Example:
  tradectl metrics tradetrack_backup_trader_2024-03-15.json --account "Just Capital"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := request.ParseTradeFilter(account, market, side, from, to)
			if err != nil {
				return err
			}

			var fkey *fernet.Key
			if key == "" {
				key = os.Getenv("BACKUP_ENCRYPTION_KEY")
			}
			if key != "" {
				if fkey, err = fernet.DecodeKey(key); err != nil {
					return fmt.Errorf("bad --key: %w", err)
				}
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}

			ledger, err := service.OpenBackup(data, fkey)
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}

			return writeJSON(cmd.OutOrStdout(), metrics.Build(ledger, filter))
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "only trades booked to this account")
	cmd.Flags().StringVar(&market, "market", "", "Forex or Futures")
	cmd.Flags().StringVar(&side, "side", "", "Long or Short")
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&key, "key", "", "fernet key for sealed snapshots (default $BACKUP_ENCRYPTION_KEY)")

	return cmd
}
