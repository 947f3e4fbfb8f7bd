package ledger

import (
	"fmt"

	"github.com/danukusuma/mutasi/internal/model"
)

// bankIndex resolves bank identifiers to their display lines. A missing
// bank degrades to a placeholder instead of aborting the build.
type bankIndex map[int64]model.Bank

func indexBanks(banks []model.Bank) bankIndex {
	ix := make(bankIndex, len(banks))
	for _, b := range banks {
		ix[b.ID] = b
	}
	return ix
}

func (ix bankIndex) lines(id int64) []string {
	if b, ok := ix[id]; ok {
		return b.DescriptionLines()
	}
	return []string{fmt.Sprintf("#%d", id), "-"}
}

// Click time per category: deposits and withdrawals use their opened time,
// falling back to creation time when the record was never opened; the other
// four categories use creation time. Transfers share one click time across
// both legs.

func normalizeDeposits(records []model.Deposit, banks bankIndex) []Row {
	rows := make([]Row, 0, len(records))
	for _, d := range records {
		click := d.CreatedAt
		if d.OpenedAt != nil {
			click = *d.OpenedAt
		}
		rows = append(rows, Row{
			ClickTime:   click,
			ChosenTop:   d.FinalizedAt,
			Category:    model.CategoryDeposit,
			BankID:      d.BankID,
			BankLines:   banks.lines(d.BankID),
			Description: d.Description,
			Amount:      d.NetAmount,
			CreatorID:   d.CreatedBy,
		})
	}
	return rows
}

func normalizeWithdrawals(records []model.Withdrawal, banks bankIndex) []Row {
	rows := make([]Row, 0, len(records))
	for _, w := range records {
		click := w.CreatedAt
		if w.OpenedAt != nil {
			click = *w.OpenedAt
		}
		rows = append(rows, Row{
			ClickTime:   click,
			ChosenTop:   w.FinalizedAt,
			Category:    model.CategoryWithdrawal,
			BankID:      w.BankID,
			BankLines:   banks.lines(w.BankID),
			Description: w.Description,
			Amount:      w.NetAmount.Abs().Neg(),
			CreatorID:   w.CreatedBy,
		})
	}
	return rows
}

func normalizePendingDeposits(records []model.PendingDeposit, banks bankIndex) []Row {
	rows := make([]Row, 0, len(records))
	for _, p := range records {
		rows = append(rows, Row{
			ClickTime:   p.CreatedAt,
			ChosenTop:   p.FinalizedAt,
			Category:    model.CategoryPendingDeposit,
			BankID:      p.BankID,
			BankLines:   banks.lines(p.BankID),
			Description: p.Description,
			Amount:      p.NetAmount,
			CreatorID:   p.CreatedBy,
		})
	}
	return rows
}

func normalizeBankAdjustments(records []model.BankAdjustment, banks bankIndex) []Row {
	rows := make([]Row, 0, len(records))
	for _, a := range records {
		rows = append(rows, Row{
			ClickTime:   a.CreatedAt,
			ChosenTop:   a.FinalizedAt,
			Category:    model.CategoryBankAdjustment,
			BankID:      a.BankID,
			BankLines:   banks.lines(a.BankID),
			Description: a.Description,
			Amount:      a.Delta, // already signed
			CreatorID:   a.CreatedBy,
		})
	}
	return rows
}

func normalizeBankExpenses(records []model.BankExpense, banks bankIndex) []Row {
	rows := make([]Row, 0, len(records))
	for _, e := range records {
		rows = append(rows, Row{
			ClickTime:   e.CreatedAt,
			ChosenTop:   e.FinalizedAt,
			Category:    model.CategoryBankExpense,
			BankID:      e.BankID,
			BankLines:   banks.lines(e.BankID),
			Description: e.Description,
			Amount:      e.Amount, // already negative at the source
			CreatorID:   e.CreatedBy,
		})
	}
	return rows
}

// normalizeInterbankTransfers expands every transfer into two ledger rows:
// a debit on the from side and a credit on the to side. Both legs share the
// click time, chosen times and description; only the bank and the sign of
// the amount differ.
func normalizeInterbankTransfers(records []model.InterbankTransfer, banks bankIndex) []Row {
	rows := make([]Row, 0, 2*len(records))
	for _, t := range records {
		rows = append(rows, Row{
			ClickTime:    t.CreatedAt,
			ChosenTop:    t.FromAt,
			ChosenBottom: t.ToAt,
			Category:     model.CategoryInterbankTransfer,
			BankID:       t.FromBankID,
			BankLines:    banks.lines(t.FromBankID),
			Description:  t.Description,
			Amount:       t.GrossAmount.Abs().Neg(),
			CreatorID:    t.CreatedBy,
		})
		rows = append(rows, Row{
			ClickTime:    t.CreatedAt,
			ChosenTop:    t.FromAt,
			ChosenBottom: t.ToAt,
			Category:     model.CategoryInterbankTransfer,
			BankID:       t.ToBankID,
			BankLines:    banks.lines(t.ToBankID),
			Description:  t.Description,
			Amount:       t.GrossAmount.Abs(),
			CreatorID:    t.CreatedBy,
		})
	}
	return rows
}
