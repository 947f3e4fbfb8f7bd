package main

import (
	"github.com/danukusuma/mutasi/internal/ledger"
	"github.com/danukusuma/mutasi/internal/tui"
	"github.com/spf13/cobra"
)

func browseCmd() *cobra.Command {
	var (
		fromDate string
		toDate   string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse unified mutations interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := rangeFromFlags(fromDate, toDate)
			if err != nil {
				return err
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return tui.Run(ledger.NewBuilder(store), query)
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "start date (YYYY-MM-DD, UTC+7)")
	cmd.Flags().StringVar(&toDate, "to", "", "finish date (YYYY-MM-DD, UTC+7)")

	return cmd
}
