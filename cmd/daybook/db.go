package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yuchingh/daybook/internal/storage"
)

func dbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the local device store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "wipe",
		Short: "Delete the local device store (notification markers, device settings)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := storage.Wipe()
			if err != nil {
				return err
			}
			fmt.Printf("Local store wiped: %s\n", cfg.Path)
			return nil
		},
	})

	return cmd
}
