// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/danukusuma/mutasi/internal/model"
)

// DateRange is an inclusive instant range. Both bounds are set when the
// range is present.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// RecordQuery narrows a category fetch. A nil Range fetches everything
// visible to the tenant. The range applies to each category's own
// click-time column: opened-at for deposits and withdrawals, created-at
// for the rest.
type RecordQuery struct {
	Range *DateRange
}

// Storage is the contract for the tenant-scoped persistence layer. Every
// read and write is implicitly restricted to the tenant the store was
// opened for.
type Storage interface {
	// Mutation category reads.
	Deposits(ctx context.Context, q RecordQuery) ([]model.Deposit, error)
	Withdrawals(ctx context.Context, q RecordQuery) ([]model.Withdrawal, error)
	PendingDeposits(ctx context.Context, q RecordQuery) ([]model.PendingDeposit, error)
	BankAdjustments(ctx context.Context, q RecordQuery) ([]model.BankAdjustment, error)
	BankExpenses(ctx context.Context, q RecordQuery) ([]model.BankExpense, error)
	InterbankTransfers(ctx context.Context, q RecordQuery) ([]model.InterbankTransfer, error)

	// Reference data.
	Banks(ctx context.Context) ([]model.Bank, error)
	OperatorsByID(ctx context.Context, ids []string) ([]model.Operator, error)
	Leads(ctx context.Context) ([]model.Lead, error)

	// Back-office form writes.
	SaveDeposits(ctx context.Context, records []model.Deposit) error
	SaveWithdrawals(ctx context.Context, records []model.Withdrawal) error
	SavePendingDeposits(ctx context.Context, records []model.PendingDeposit) error
	SaveBankAdjustments(ctx context.Context, records []model.BankAdjustment) error
	SaveBankExpenses(ctx context.Context, records []model.BankExpense) error
	SaveInterbankTransfers(ctx context.Context, records []model.InterbankTransfer) error
	SaveBank(ctx context.Context, bank *model.Bank) error
	SaveOperator(ctx context.Context, op *model.Operator) error
	SaveLead(ctx context.Context, lead *model.Lead) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}
