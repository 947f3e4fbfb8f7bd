package model

// Category tags the six kinds of financial events that feed the unified
// mutation ledger.
type Category string

// Mutation categories.
const (
	CategoryDeposit           Category = "deposit"
	CategoryWithdrawal        Category = "withdrawal"
	CategoryPendingDeposit    Category = "pending_deposit"
	CategoryBankAdjustment    Category = "bank_adjustment"
	CategoryBankExpense       Category = "bank_expense"
	CategoryInterbankTransfer Category = "interbank_transfer"
)

// Categories lists every category in the order they are merged into the
// unified ledger. The order is fixed so a rebuild is deterministic.
var Categories = []Category{
	CategoryDeposit,
	CategoryWithdrawal,
	CategoryPendingDeposit,
	CategoryBankAdjustment,
	CategoryBankExpense,
	CategoryInterbankTransfer,
}

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryDeposit, CategoryWithdrawal, CategoryPendingDeposit,
		CategoryBankAdjustment, CategoryBankExpense, CategoryInterbankTransfer:
		return true
	default:
		return false
	}
}

// Label returns a short human-readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryDeposit:
		return "Deposit"
	case CategoryWithdrawal:
		return "Withdrawal"
	case CategoryPendingDeposit:
		return "Pending Deposit"
	case CategoryBankAdjustment:
		return "Adjustment"
	case CategoryBankExpense:
		return "Expense"
	case CategoryInterbankTransfer:
		return "Transfer"
	default:
		return string(c)
	}
}
