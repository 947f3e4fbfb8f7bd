package main

import (
	"fmt"

	"github.com/danukusuma/mutasi/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Bring the database schema up to the version this build expects.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// initStorage migrates as a side effect; surface the version
			// explicitly here.
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			version, err := store.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Database schema at version %d (expected %d)\n", version, storage.ExpectedSchemaVersion)
			return nil
		},
	}

	return cmd
}
