package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/danukusuma/mutasi/internal/cli"
	"github.com/danukusuma/mutasi/internal/ledger"
	"github.com/danukusuma/mutasi/internal/model"
	"github.com/spf13/cobra"
)

func mutationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutations",
		Short: "Work with the unified mutation ledger",
		Long:  `Build, filter and export the merged ledger of all six mutation categories.`,
	}

	cmd.AddCommand(listMutationsCmd())
	cmd.AddCommand(exportMutationsCmd())

	return cmd
}

func listMutationsCmd() *cobra.Command {
	var (
		fromDate   string
		toDate     string
		seqFilter  string
		search     string
		category   string
		bankFilter int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List unified mutations",
		Long: `Fetch all six mutation categories for the date window, merge them into
one sequence-numbered ledger and print it, newest click first. The filter
flags narrow the already-numbered ledger; they never renumber it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if category != "" && !model.Category(category).Valid() {
				return fmt.Errorf("unknown category %q", category)
			}

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

			rows := ledger.Filter{
				Seq:      seqFilter,
				Search:   search,
				Category: model.Category(category),
				BankID:   bankFilter,
				Range:    query.Range,
			}.Apply(led.Rows)

			if len(rows) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No mutations found."))
				return nil
			}

			printMutationTable(rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "start date (YYYY-MM-DD, UTC+7)")
	cmd.Flags().StringVar(&toDate, "to", "", "finish date (YYYY-MM-DD, UTC+7)")
	cmd.Flags().StringVar(&seqFilter, "seq", "", "exact display sequence number")
	cmd.Flags().StringVar(&search, "search", "", "substring match over description and bank")
	cmd.Flags().StringVar(&category, "category", "", "exact category tag")
	cmd.Flags().Int64Var(&bankFilter, "bank", 0, "exact bank id")

	return cmd
}

func printMutationTable(rows []ledger.Row) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("No"),
		cli.TableHeaderStyle.Render("Click Time"),
		cli.TableHeaderStyle.Render("Category"),
		cli.TableHeaderStyle.Render("Bank"),
		cli.TableHeaderStyle.Render("Description"),
		cli.TableHeaderStyle.Render("Amount"),
		cli.TableHeaderStyle.Render("By"))

	for _, r := range rows {
		desc := r.Description
		if desc == "" {
			desc = cli.SubtleStyle.Render("-")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Seq,
			r.ClickTime.In(ledger.Zone).Format("2006-01-02 15:04:05"),
			r.Category.Label(),
			strings.Join(r.BankLines, " / "),
			desc,
			cli.FormatAmount(r.Amount),
			r.CreatorName)
	}
}
