package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danukusuma/mutasi/internal/ledger"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func exportMutationsCmd() *cobra.Command {
	var (
		fromDate string
		toDate   string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export unified mutations to CSV",
		Long:  `Build the unified ledger for the date window and write it to a CSV file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			query, err := rangeFromFlags(fromDate, toDate)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			builder := ledger.NewBuilder(store)
			led, err := builder.Build(ctx, query)
			if err != nil {
				return err
			}
			builder.ResolveCreators(ctx, led)

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer func() { _ = f.Close() }()

			wr := csv.NewWriter(f)
			header := []string{"no", "click_time", "chosen_time", "category", "bank_id", "bank", "description", "amount", "created_by"}
			if err := wr.Write(header); err != nil {
				return fmt.Errorf("failed to write header: %w", err)
			}

			bar := progressbar.NewOptions(len(led.Rows),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Exporting mutations..."),
			)

			for _, r := range led.Rows {
				record := []string{
					strconv.Itoa(r.Seq),
					r.ClickTime.In(ledger.Zone).Format(time.RFC3339),
					chosenTimes(r),
					string(r.Category),
					strconv.FormatInt(r.BankID, 10),
					strings.Join(r.BankLines, " "),
					r.Description,
					r.Amount.StringFixed(2),
					r.CreatorName,
				}
				if err := wr.Write(record); err != nil {
					return fmt.Errorf("failed to write row %d: %w", r.Seq, err)
				}
				_ = bar.Add(1)
			}

			wr.Flush()
			if err := wr.Error(); err != nil {
				return fmt.Errorf("failed to flush csv: %w", err)
			}

			fmt.Fprintf(os.Stderr, "\nWrote %d rows to %s\n", len(led.Rows), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "start date (YYYY-MM-DD, UTC+7)")
	cmd.Flags().StringVar(&toDate, "to", "", "finish date (YYYY-MM-DD, UTC+7)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "mutations.csv", "output file")

	return cmd
}

// chosenTimes renders the display-only chosen instants; transfers carry two.
func chosenTimes(r ledger.Row) string {
	var parts []string
	if r.ChosenTop != nil {
		parts = append(parts, r.ChosenTop.In(ledger.Zone).Format(time.RFC3339))
	}
	if r.ChosenBottom != nil {
		parts = append(parts, r.ChosenBottom.In(ledger.Zone).Format(time.RFC3339))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " / ")
}
