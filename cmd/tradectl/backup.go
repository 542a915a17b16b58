package main

import (
	"fmt"

	"github.com/fernet/fernet-go"
	"github.com/spf13/cobra"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Backup key management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "keygen",
		Short: "Generate a key for BACKUP_ENCRYPTION_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var k fernet.Key
			if err := k.Generate(); err != nil {
				return fmt.Errorf("generate key: %w", err)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), k.Encode())
			return err
		},
	})

	return cmd
}
