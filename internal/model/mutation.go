// Package model defines the financial event records and reference data
// managed by the back office.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit is a finalized customer deposit into one of the tenant's banks.
type Deposit struct {
	OpenedAt    *time.Time
	FinalizedAt *time.Time
	CreatedAt   time.Time
	LeadCode    string
	Description string
	CreatedBy   string
	NetAmount   decimal.Decimal
	ID          int64
	BankID      int64
}

// Withdrawal is a finalized customer withdrawal. NetAmount is stored as a
// positive magnitude; the ledger applies the sign.
type Withdrawal struct {
	OpenedAt    *time.Time
	FinalizedAt *time.Time
	CreatedAt   time.Time
	LeadCode    string
	Description string
	CreatedBy   string
	NetAmount   decimal.Decimal
	ID          int64
	BankID      int64
}

// PendingDeposit is a deposit that arrived at a bank but has not been
// assigned to a lead yet.
type PendingDeposit struct {
	FinalizedAt *time.Time
	CreatedAt   time.Time
	Description string
	CreatedBy   string
	NetAmount   decimal.Decimal
	ID          int64
	BankID      int64
}

// BankAdjustment is a manual balance correction. Delta is already signed.
type BankAdjustment struct {
	FinalizedAt *time.Time
	CreatedAt   time.Time
	Description string
	CreatedBy   string
	Delta       decimal.Decimal
	ID          int64
	BankID      int64
}

// BankExpense is an operational cost charged to a bank. Amount is stored
// negative at the source.
type BankExpense struct {
	FinalizedAt *time.Time
	CreatedAt   time.Time
	Description string
	CreatedBy   string
	Amount      decimal.Decimal
	ID          int64
	BankID      int64
}

// InterbankTransfer moves a gross amount between two of the tenant's banks.
// It produces two ledger rows: a debit on the from side and a credit on the
// to side.
type InterbankTransfer struct {
	FromAt      *time.Time
	ToAt        *time.Time
	CreatedAt   time.Time
	Description string
	CreatedBy   string
	GrossAmount decimal.Decimal
	ID          int64
	FromBankID  int64
	ToBankID    int64
}
