package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danukusuma/mutasi/internal/common"
	"github.com/danukusuma/mutasi/internal/model"
	"github.com/danukusuma/mutasi/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is a hand-written Storage stub. Reads return the configured
// slices or errors; writes are not used by the builder.
type fakeStore struct {
	depositsErr    error
	withdrawalsErr error
	pendingErr     error
	adjustmentsErr error
	expensesErr    error
	transfersErr   error
	banksErr       error
	operatorsErr   error

	deposits    []model.Deposit
	withdrawals []model.Withdrawal
	pending     []model.PendingDeposit
	adjustments []model.BankAdjustment
	expenses    []model.BankExpense
	transfers   []model.InterbankTransfer
	banks       []model.Bank
	operators   []model.Operator

	operatorQueries [][]string
}

var _ service.Storage = (*fakeStore)(nil)

func (f *fakeStore) Deposits(_ context.Context, _ service.RecordQuery) ([]model.Deposit, error) {
	return f.deposits, f.depositsErr
}

func (f *fakeStore) Withdrawals(_ context.Context, _ service.RecordQuery) ([]model.Withdrawal, error) {
	return f.withdrawals, f.withdrawalsErr
}

func (f *fakeStore) PendingDeposits(_ context.Context, _ service.RecordQuery) ([]model.PendingDeposit, error) {
	return f.pending, f.pendingErr
}

func (f *fakeStore) BankAdjustments(_ context.Context, _ service.RecordQuery) ([]model.BankAdjustment, error) {
	return f.adjustments, f.adjustmentsErr
}

func (f *fakeStore) BankExpenses(_ context.Context, _ service.RecordQuery) ([]model.BankExpense, error) {
	return f.expenses, f.expensesErr
}

func (f *fakeStore) InterbankTransfers(_ context.Context, _ service.RecordQuery) ([]model.InterbankTransfer, error) {
	return f.transfers, f.transfersErr
}

func (f *fakeStore) Banks(_ context.Context) ([]model.Bank, error) {
	return f.banks, f.banksErr
}

func (f *fakeStore) OperatorsByID(_ context.Context, ids []string) ([]model.Operator, error) {
	f.operatorQueries = append(f.operatorQueries, ids)
	return f.operators, f.operatorsErr
}

func (f *fakeStore) Leads(_ context.Context) ([]model.Lead, error) { return nil, nil }

func (f *fakeStore) SaveDeposits(_ context.Context, _ []model.Deposit) error         { return nil }
func (f *fakeStore) SaveWithdrawals(_ context.Context, _ []model.Withdrawal) error   { return nil }
func (f *fakeStore) SavePendingDeposits(_ context.Context, _ []model.PendingDeposit) error {
	return nil
}
func (f *fakeStore) SaveBankAdjustments(_ context.Context, _ []model.BankAdjustment) error {
	return nil
}
func (f *fakeStore) SaveBankExpenses(_ context.Context, _ []model.BankExpense) error { return nil }
func (f *fakeStore) SaveInterbankTransfers(_ context.Context, _ []model.InterbankTransfer) error {
	return nil
}
func (f *fakeStore) SaveBank(_ context.Context, _ *model.Bank) error         { return nil }
func (f *fakeStore) SaveOperator(_ context.Context, _ *model.Operator) error { return nil }
func (f *fakeStore) SaveLead(_ context.Context, _ *model.Lead) error         { return nil }
func (f *fakeStore) Migrate(_ context.Context) error                         { return nil }
func (f *fakeStore) Close() error                                            { return nil }

func ptr(t time.Time) *time.Time { return &t }

func testBanks() []model.Bank {
	return []model.Bank{
		{ID: 1, Code: "BCA", AccountName: "PT Maju", AccountNumber: "111"},
		{ID: 2, Code: "BRI", AccountName: "PT Maju", AccountNumber: "222"},
	}
}

func TestBuilder_Build_MergesAndNumbers(t *testing.T) {
	t1 := time.Date(2025, 3, 10, 9, 0, 0, 0, Zone)
	t2 := t1.Add(1 * time.Second)
	t3 := t1.Add(2 * time.Second)

	store := &fakeStore{
		banks: testBanks(),
		deposits: []model.Deposit{{
			ID: 11, BankID: 1, NetAmount: decimal.NewFromInt(100),
			OpenedAt: ptr(t1), FinalizedAt: ptr(t1.Add(time.Minute)),
			CreatedBy: "op-a", CreatedAt: t1.Add(-time.Minute),
		}},
		withdrawals: []model.Withdrawal{{
			ID: 21, BankID: 1, NetAmount: decimal.NewFromInt(50),
			OpenedAt: ptr(t2), CreatedBy: "op-a", CreatedAt: t2.Add(-time.Minute),
		}},
		transfers: []model.InterbankTransfer{{
			ID: 31, FromBankID: 1, ToBankID: 2, GrossAmount: decimal.NewFromInt(30),
			Description: "rebalance", FromAt: ptr(t3), ToAt: ptr(t3.Add(time.Minute)),
			CreatedBy: "op-b", CreatedAt: t3,
		}},
	}

	led, err := NewBuilder(store).Build(context.Background(), service.RecordQuery{})
	require.NoError(t, err)
	require.Len(t, led.Rows, 4)

	// Display order is newest click first: the two transfer legs, then the
	// withdrawal, then the deposit.
	assert.Equal(t, model.CategoryInterbankTransfer, led.Rows[0].Category)
	assert.Equal(t, model.CategoryInterbankTransfer, led.Rows[1].Category)
	assert.Equal(t, model.CategoryWithdrawal, led.Rows[2].Category)
	assert.Equal(t, model.CategoryDeposit, led.Rows[3].Category)

	assert.Equal(t, 4, led.Rows[0].Seq)
	assert.Equal(t, 3, led.Rows[1].Seq)
	assert.Equal(t, 2, led.Rows[2].Seq)
	assert.Equal(t, 1, led.Rows[3].Seq)

	// Signs are category-determined.
	assert.True(t, led.Rows[3].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, led.Rows[2].Amount.Equal(decimal.NewFromInt(-50)))

	// The transfer legs: equal magnitude, opposite sign, shared times and
	// description.
	credit, debit := led.Rows[0], led.Rows[1]
	assert.True(t, credit.Amount.Equal(decimal.NewFromInt(30)))
	assert.True(t, debit.Amount.Equal(decimal.NewFromInt(-30)))
	assert.True(t, credit.ClickTime.Equal(debit.ClickTime))
	assert.Equal(t, credit.Description, debit.Description)
	assert.Equal(t, credit.ChosenTop, debit.ChosenTop)
	assert.Equal(t, credit.ChosenBottom, debit.ChosenBottom)
	assert.NotEqual(t, credit.BankID, debit.BankID)

	// Distinct creators, one batch.
	assert.ElementsMatch(t, []string{"op-a", "op-b"}, led.CreatorIDs)
}

func TestBuilder_Build_SequenceIsDensePermutation(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, Zone)
	store := &fakeStore{banks: testBanks()}
	for i := 0; i < 20; i++ {
		at := base.Add(time.Duration(i*7%13) * time.Hour)
		store.deposits = append(store.deposits, model.Deposit{
			ID: int64(i), BankID: 1, NetAmount: decimal.NewFromInt(int64(i + 1)),
			OpenedAt: ptr(at), CreatedAt: at,
		})
	}
	store.transfers = []model.InterbankTransfer{{
		ID: 99, FromBankID: 1, ToBankID: 2, GrossAmount: decimal.NewFromInt(5),
		CreatedAt: base.Add(3 * time.Hour),
	}}

	led, err := NewBuilder(store).Build(context.Background(), service.RecordQuery{})
	require.NoError(t, err)
	require.Len(t, led.Rows, 22) // transfers count as two

	seen := make(map[int]bool, len(led.Rows))
	for _, r := range led.Rows {
		assert.False(t, seen[r.Seq], "duplicate sequence %d", r.Seq)
		seen[r.Seq] = true
		assert.GreaterOrEqual(t, r.Seq, 1)
		assert.LessOrEqual(t, r.Seq, len(led.Rows))
	}

	// Display order is sequence strictly descending, and ascending sequence
	// is monotonic in click time.
	for i := 1; i < len(led.Rows); i++ {
		assert.Equal(t, led.Rows[i-1].Seq-1, led.Rows[i].Seq)
		assert.False(t, led.Rows[i-1].ClickTime.Before(led.Rows[i].ClickTime))
	}
}

func TestBuilder_Build_Idempotent(t *testing.T) {
	base := time.Date(2025, 5, 2, 8, 30, 0, 0, Zone)
	store := &fakeStore{
		banks: testBanks(),
		deposits: []model.Deposit{
			{ID: 1, BankID: 1, NetAmount: decimal.NewFromInt(10), OpenedAt: ptr(base), CreatedAt: base},
			{ID: 2, BankID: 2, NetAmount: decimal.NewFromInt(20), CreatedAt: base}, // same click via fallback
		},
		expenses: []model.BankExpense{
			{ID: 3, BankID: 1, Amount: decimal.NewFromInt(-7), CreatedAt: base},
		},
	}

	b := NewBuilder(store)
	first, err := b.Build(context.Background(), service.RecordQuery{})
	require.NoError(t, err)
	second, err := b.Build(context.Background(), service.RecordQuery{})
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestBuilder_Build_CategoryFetchFailureIsFatal(t *testing.T) {
	boom := errors.New("connection reset")
	store := &fakeStore{
		banks: testBanks(),
		deposits: []model.Deposit{{
			ID: 1, BankID: 1, NetAmount: decimal.NewFromInt(10),
			CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, Zone),
		}},
		expensesErr: boom,
	}

	led, err := NewBuilder(store).Build(context.Background(), service.RecordQuery{})
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, common.ErrFetchFailed)
	// No partial ledger.
	assert.Nil(t, led)
}

func TestBuilder_Build_BankLookupFailureDegrades(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, Zone)
	store := &fakeStore{
		banksErr: errors.New("label service down"),
		deposits: []model.Deposit{{
			ID: 1, BankID: 7, NetAmount: decimal.NewFromInt(10), CreatedAt: at,
		}},
	}

	led, err := NewBuilder(store).Build(context.Background(), service.RecordQuery{})
	require.NoError(t, err)
	require.Len(t, led.Rows, 1)
	assert.Equal(t, []string{"#7", "-"}, led.Rows[0].BankLines)
}

func TestBuilder_Build_EmptyResultIsValid(t *testing.T) {
	led, err := NewBuilder(&fakeStore{banks: testBanks()}).Build(context.Background(), service.RecordQuery{})
	require.NoError(t, err)
	assert.Empty(t, led.Rows)
	assert.Empty(t, led.CreatorIDs)
}

func TestBuilder_ResolveCreators(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, Zone)
	store := &fakeStore{
		banks: testBanks(),
		deposits: []model.Deposit{
			{ID: 1, BankID: 1, NetAmount: decimal.NewFromInt(10), CreatedBy: "op-known", CreatedAt: at},
			{ID: 2, BankID: 1, NetAmount: decimal.NewFromInt(20), CreatedBy: "op-unknown-123456", CreatedAt: at},
		},
		operators: []model.Operator{{ID: "op-known", DisplayName: "Dewi"}},
	}

	b := NewBuilder(store)
	led, err := b.Build(context.Background(), service.RecordQuery{})
	require.NoError(t, err)

	b.ResolveCreators(context.Background(), led)

	names := make(map[string]string, len(led.Rows))
	for _, r := range led.Rows {
		names[r.CreatorID] = r.CreatorName
	}
	assert.Equal(t, "Dewi", names["op-known"])
	// Unknown identifiers fall back to the first 8 characters.
	assert.Equal(t, "op-unkno", names["op-unknown-123456"])

	// One batched lookup, not one per row.
	require.Len(t, store.operatorQueries, 1)
	assert.ElementsMatch(t, []string{"op-known", "op-unknown-123456"}, store.operatorQueries[0])
}

func TestBuilder_ResolveCreators_LookupFailureDegrades(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, Zone)
	store := &fakeStore{
		banks: testBanks(),
		deposits: []model.Deposit{
			{ID: 1, BankID: 1, NetAmount: decimal.NewFromInt(10), CreatedBy: "op-4f21c09a77", CreatedAt: at},
		},
		operatorsErr: errors.New("identity service down"),
	}

	b := NewBuilder(store)
	led, err := b.Build(context.Background(), service.RecordQuery{})
	require.NoError(t, err)

	b.ResolveCreators(context.Background(), led)
	assert.Equal(t, "op-4f21c", led.Rows[0].CreatorName)
}
