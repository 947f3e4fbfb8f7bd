package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/danukusuma/mutasi/internal/cli"
	"github.com/danukusuma/mutasi/internal/model"
	"github.com/spf13/cobra"
)

func leadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Manage the tenant's leads",
	}

	cmd.AddCommand(listLeadsCmd())
	cmd.AddCommand(addLeadCmd())

	return cmd
}

func listLeadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all leads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			leads, err := store.Leads(ctx)
			if err != nil {
				return fmt.Errorf("failed to get leads: %w", err)
			}

			if len(leads) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No leads found. Use 'mutasi leads add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Code"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Phone"),
				cli.TableHeaderStyle.Render("Since"))

			for _, l := range leads {
				phone := l.Phone
				if phone == "" {
					phone = cli.SubtleStyle.Render("-")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					l.Code, l.Name, phone, l.CreatedAt.In(time.UTC).Format("2006-01-02"))
			}

			return nil
		},
	}
}

func addLeadCmd() *cobra.Command {
	var (
		name  string
		phone string
	)

	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Add a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			lead := model.Lead{
				Code:      args[0],
				Name:      name,
				Phone:     phone,
				CreatedAt: time.Now(),
			}
			if err := store.SaveLead(ctx, &lead); err != nil {
				return fmt.Errorf("failed to save lead: %w", err)
			}

			fmt.Printf("Created lead %s\n", lead.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "lead name")
	cmd.Flags().StringVar(&phone, "phone", "", "contact phone")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
