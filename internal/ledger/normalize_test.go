package ledger

import (
	"testing"
	"time"

	"github.com/danukusuma/mutasi/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ClickTimeMapping(t *testing.T) {
	created := time.Date(2025, 2, 1, 10, 0, 0, 0, Zone)
	opened := created.Add(-30 * time.Minute)
	ix := indexBanks(testBanks())

	t.Run("deposit uses opened time", func(t *testing.T) {
		rows := normalizeDeposits([]model.Deposit{{
			BankID: 1, NetAmount: decimal.NewFromInt(10),
			OpenedAt: &opened, CreatedAt: created,
		}}, ix)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].ClickTime.Equal(opened))
	})

	t.Run("deposit falls back to created time", func(t *testing.T) {
		rows := normalizeDeposits([]model.Deposit{{
			BankID: 1, NetAmount: decimal.NewFromInt(10), CreatedAt: created,
		}}, ix)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].ClickTime.Equal(created))
	})

	t.Run("withdrawal uses opened time", func(t *testing.T) {
		rows := normalizeWithdrawals([]model.Withdrawal{{
			BankID: 1, NetAmount: decimal.NewFromInt(10),
			OpenedAt: &opened, CreatedAt: created,
		}}, ix)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].ClickTime.Equal(opened))
	})

	t.Run("pending deposit uses created time", func(t *testing.T) {
		rows := normalizePendingDeposits([]model.PendingDeposit{{
			BankID: 1, NetAmount: decimal.NewFromInt(10), CreatedAt: created,
		}}, ix)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].ClickTime.Equal(created))
	})

	t.Run("transfer legs share created time", func(t *testing.T) {
		rows := normalizeInterbankTransfers([]model.InterbankTransfer{{
			FromBankID: 1, ToBankID: 2, GrossAmount: decimal.NewFromInt(10),
			CreatedAt: created,
		}}, ix)
		require.Len(t, rows, 2)
		assert.True(t, rows[0].ClickTime.Equal(created))
		assert.True(t, rows[1].ClickTime.Equal(created))
	})
}

func TestNormalize_SignRules(t *testing.T) {
	at := time.Date(2025, 2, 1, 10, 0, 0, 0, Zone)
	ix := indexBanks(testBanks())

	t.Run("deposit keeps positive net", func(t *testing.T) {
		rows := normalizeDeposits([]model.Deposit{{
			BankID: 1, NetAmount: decimal.NewFromInt(100), CreatedAt: at,
		}}, ix)
		assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("withdrawal is negated magnitude", func(t *testing.T) {
		for _, net := range []int64{50, -50} {
			rows := normalizeWithdrawals([]model.Withdrawal{{
				BankID: 1, NetAmount: decimal.NewFromInt(net), CreatedAt: at,
			}}, ix)
			assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(-50)))
		}
	})

	t.Run("adjustment delta passes through signed", func(t *testing.T) {
		rows := normalizeBankAdjustments([]model.BankAdjustment{{
			BankID: 1, Delta: decimal.NewFromInt(-25), CreatedAt: at,
		}}, ix)
		assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(-25)))
	})

	t.Run("expense passes through as stored", func(t *testing.T) {
		rows := normalizeBankExpenses([]model.BankExpense{{
			BankID: 1, Amount: decimal.NewFromInt(-15), CreatedAt: at,
		}}, ix)
		assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(-15)))
	})

	t.Run("transfer debits from side and credits to side", func(t *testing.T) {
		rows := normalizeInterbankTransfers([]model.InterbankTransfer{{
			FromBankID: 1, ToBankID: 2, GrossAmount: decimal.NewFromInt(30), CreatedAt: at,
		}}, ix)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(1), rows[0].BankID)
		assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(-30)))
		assert.Equal(t, int64(2), rows[1].BankID)
		assert.True(t, rows[1].Amount.Equal(decimal.NewFromInt(30)))
	})
}

func TestBankIndex_MissingBankDegrades(t *testing.T) {
	ix := indexBanks(nil)
	assert.Equal(t, []string{"#42", "-"}, ix.lines(42))

	ix = indexBanks(testBanks())
	assert.Equal(t, []string{"BCA PT Maju", "111"}, ix.lines(1))
}

func TestBankDescriptionLines_Placeholders(t *testing.T) {
	tests := []struct {
		name string
		bank model.Bank
		want []string
	}{
		{
			name: "full",
			bank: model.Bank{Code: "BCA", AccountName: "PT Maju", AccountNumber: "111"},
			want: []string{"BCA PT Maju", "111"},
		},
		{
			name: "missing number",
			bank: model.Bank{Code: "BCA", AccountName: "PT Maju"},
			want: []string{"BCA PT Maju", "-"},
		},
		{
			name: "missing everything",
			bank: model.Bank{},
			want: []string{"-", "-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bank.DescriptionLines())
		})
	}
}
