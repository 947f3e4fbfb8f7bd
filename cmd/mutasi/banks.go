package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/danukusuma/mutasi/internal/cli"
	"github.com/danukusuma/mutasi/internal/model"
	"github.com/spf13/cobra"
)

func banksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banks",
		Short: "Manage the tenant's bank accounts",
	}

	cmd.AddCommand(listBanksCmd())
	cmd.AddCommand(addBankCmd())

	return cmd
}

func listBanksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all banks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			banks, err := store.Banks(ctx)
			if err != nil {
				return fmt.Errorf("failed to get banks: %w", err)
			}

			if len(banks) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No banks found. Use 'mutasi banks add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Code"),
				cli.TableHeaderStyle.Render("Account Name"),
				cli.TableHeaderStyle.Render("Account Number"))

			for _, b := range banks {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", b.ID, b.Code, b.AccountName, b.AccountNumber)
			}

			return nil
		},
	}
}

func addBankCmd() *cobra.Command {
	var (
		accountName   string
		accountNumber string
	)

	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Add a bank account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bank := model.Bank{
				Code:          args[0],
				AccountName:   accountName,
				AccountNumber: accountNumber,
			}
			if err := store.SaveBank(ctx, &bank); err != nil {
				return fmt.Errorf("failed to save bank: %w", err)
			}

			fmt.Printf("Created bank %d (%s)\n", bank.ID, bank.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountName, "name", "", "account holder name")
	cmd.Flags().StringVar(&accountNumber, "number", "", "account number")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
