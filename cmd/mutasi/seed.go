package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/danukusuma/mutasi/internal/model"
	"github.com/danukusuma/mutasi/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var (
		days  int
		count int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo data",
		Long: `Create a few banks, operators and leads, then spread mutation records of
all six categories over the recent past. Intended for local evaluation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return runSeed(ctx, store, days, count)
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "spread records over this many days")
	cmd.Flags().IntVar(&count, "count", 200, "number of mutation records to create")

	return cmd
}

func runSeed(ctx context.Context, store *storage.SQLiteStorage, days, count int) error {
	rng := rand.New(rand.NewSource(42)) // reproducible demo data

	banks := []model.Bank{
		{Code: "BCA", AccountName: "PT Maju Sentosa", AccountNumber: "5271038841"},
		{Code: "BRI", AccountName: "PT Maju Sentosa", AccountNumber: "0026-01-032117-56-4"},
		{Code: "BNI", AccountName: "CV Karya Abadi", AccountNumber: "0337712904"},
	}
	for i := range banks {
		if err := store.SaveBank(ctx, &banks[i]); err != nil {
			return err
		}
	}

	operators := []model.Operator{
		{ID: "op-4f21c09a77", DisplayName: "Dewi"},
		{ID: "op-91b3aa02e5", DisplayName: "Rizky"},
	}
	for i := range operators {
		if err := store.SaveOperator(ctx, &operators[i]); err != nil {
			return err
		}
	}

	for i := 0; i < 10; i++ {
		lead := model.Lead{
			Code:      fmt.Sprintf("LD%04d", i+1),
			Name:      fmt.Sprintf("Lead %d", i+1),
			Phone:     fmt.Sprintf("+62812%07d", rng.Intn(10_000_000)),
			CreatedAt: time.Now().AddDate(0, 0, -days),
		}
		if err := store.SaveLead(ctx, &lead); err != nil {
			return err
		}
	}

	bar := progressbar.NewOptions(count,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Seeding mutations..."),
	)

	now := time.Now()
	for i := 0; i < count; i++ {
		created := now.Add(-time.Duration(rng.Intn(days*24*60)) * time.Minute)
		finalized := created.Add(time.Duration(rng.Intn(120)) * time.Minute)
		bank := banks[rng.Intn(len(banks))]
		operator := operators[rng.Intn(len(operators))]
		amount := decimal.NewFromInt(int64(rng.Intn(5_000_000) + 50_000))

		var err error
		switch i % 6 {
		case 0:
			opened := created.Add(-time.Duration(rng.Intn(30)) * time.Minute)
			err = store.SaveDeposits(ctx, []model.Deposit{{
				BankID:      bank.ID,
				LeadCode:    fmt.Sprintf("LD%04d", rng.Intn(10)+1),
				NetAmount:   amount,
				Description: "seed deposit",
				OpenedAt:    &opened,
				FinalizedAt: &finalized,
				CreatedBy:   operator.ID,
				CreatedAt:   created,
			}})
		case 1:
			opened := created.Add(-time.Duration(rng.Intn(30)) * time.Minute)
			err = store.SaveWithdrawals(ctx, []model.Withdrawal{{
				BankID:      bank.ID,
				LeadCode:    fmt.Sprintf("LD%04d", rng.Intn(10)+1),
				NetAmount:   amount,
				Description: "seed withdrawal",
				OpenedAt:    &opened,
				FinalizedAt: &finalized,
				CreatedBy:   operator.ID,
				CreatedAt:   created,
			}})
		case 2:
			err = store.SavePendingDeposits(ctx, []model.PendingDeposit{{
				BankID:      bank.ID,
				NetAmount:   amount,
				Description: "unidentified inbound",
				FinalizedAt: &finalized,
				CreatedBy:   operator.ID,
				CreatedAt:   created,
			}})
		case 3:
			delta := amount
			if rng.Intn(2) == 0 {
				delta = delta.Neg()
			}
			err = store.SaveBankAdjustments(ctx, []model.BankAdjustment{{
				BankID:      bank.ID,
				Delta:       delta,
				Description: "balance correction",
				FinalizedAt: &finalized,
				CreatedBy:   operator.ID,
				CreatedAt:   created,
			}})
		case 4:
			err = store.SaveBankExpenses(ctx, []model.BankExpense{{
				BankID:      bank.ID,
				Amount:      amount.Neg(), // expenses arrive negative
				Description: "admin fee",
				FinalizedAt: &finalized,
				CreatedBy:   operator.ID,
				CreatedAt:   created,
			}})
		case 5:
			to := banks[rng.Intn(len(banks))]
			for to.ID == bank.ID {
				to = banks[rng.Intn(len(banks))]
			}
			fromAt := created
			toAt := finalized
			err = store.SaveInterbankTransfers(ctx, []model.InterbankTransfer{{
				FromBankID:  bank.ID,
				ToBankID:    to.ID,
				GrossAmount: amount,
				Description: "rebalance",
				FromAt:      &fromAt,
				ToAt:        &toAt,
				CreatedBy:   operator.ID,
				CreatedAt:   created,
			}})
		}
		if err != nil {
			return err
		}
		_ = bar.Add(1)
	}

	fmt.Fprintf(os.Stderr, "\nSeeded %d mutation records across %d banks\n", count, len(banks))
	return nil
}
