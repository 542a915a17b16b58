package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/ndewijer/TradeTrack-Backend/internal/version"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tradectl",
		Short:        "Offline tools for TradeTrack reports and backups",
		Version:      version.Version,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newReportCmd(),
		newMetricsCmd(),
		newBackupCmd(),
	)

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
