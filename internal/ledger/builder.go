package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/danukusuma/mutasi/internal/common"
	"github.com/danukusuma/mutasi/internal/model"
	"github.com/danukusuma/mutasi/internal/service"
	"golang.org/x/sync/errgroup"
)

// Ledger is the built view: rows in display order (sequence descending)
// plus the distinct creator identifiers for one batched identity lookup.
type Ledger struct {
	Rows       []Row
	CreatorIDs []string
}

// Builder constructs the unified mutation view from a tenant-scoped store.
type Builder struct {
	store service.Storage
}

// NewBuilder creates a builder over the given store.
func NewBuilder(store service.Storage) *Builder {
	return &Builder{store: store}
}

// Build fetches all six categories for the query window, normalizes them
// into unified rows, orders them by click time and assigns display
// sequence numbers.
//
// The six category fetches run concurrently; if any of them fails the
// whole build fails — an under-counted ledger is worse than no ledger.
// The bank-label lookup also runs concurrently but degrades to placeholder
// lines on failure. Build is read-only and idempotent: the same query
// against an unchanged store yields an identical sequence, numbering
// included.
func (b *Builder) Build(ctx context.Context, q service.RecordQuery) (*Ledger, error) {
	var (
		deposits    []model.Deposit
		withdrawals []model.Withdrawal
		pending     []model.PendingDeposit
		adjustments []model.BankAdjustment
		expenses    []model.BankExpense
		transfers   []model.InterbankTransfer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		deposits, err = b.store.Deposits(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		withdrawals, err = b.store.Withdrawals(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		pending, err = b.store.PendingDeposits(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		adjustments, err = b.store.BankAdjustments(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = b.store.BankExpenses(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		transfers, err = b.store.InterbankTransfers(gctx, q)
		return err
	})

	// The label lookup is independent of the category fetches and must not
	// take the build down with it, so it runs outside the group.
	var (
		banks    []model.Bank
		banksErr error
	)
	banksDone := make(chan struct{})
	go func() {
		defer close(banksDone)
		banks, banksErr = b.store.Banks(ctx)
	}()

	if err := g.Wait(); err != nil {
		<-banksDone
		return nil, fmt.Errorf("%w: %w", common.ErrFetchFailed, err)
	}
	<-banksDone
	if banksErr != nil {
		slog.Warn("bank lookup failed, falling back to placeholder labels", "error", banksErr)
		banks = nil
	}
	ix := indexBanks(banks)

	// Concatenate in fixed category order so the tie-break among equal
	// click times does not depend on fetch completion order.
	rows := make([]Row, 0,
		len(deposits)+len(withdrawals)+len(pending)+len(adjustments)+len(expenses)+2*len(transfers))
	rows = append(rows, normalizeDeposits(deposits, ix)...)
	rows = append(rows, normalizeWithdrawals(withdrawals, ix)...)
	rows = append(rows, normalizePendingDeposits(pending, ix)...)
	rows = append(rows, normalizeBankAdjustments(adjustments, ix)...)
	rows = append(rows, normalizeBankExpenses(expenses, ix)...)
	rows = append(rows, normalizeInterbankTransfers(transfers, ix)...)

	// Order by the canonical string form of the click time, earliest
	// first, ties keeping concatenation order.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].clickKey() < rows[j].clickKey()
	})
	for i := range rows {
		rows[i].Seq = i + 1
	}

	// Display order is a pure reversal of the numbered pass: sequence
	// strictly descending, newest click first.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	return &Ledger{
		Rows:       rows,
		CreatorIDs: distinctCreators(rows),
	}, nil
}

// distinctCreators collects the non-empty creator identifiers in first-seen
// display order.
func distinctCreators(rows []Row) []string {
	seen := make(map[string]struct{}, len(rows))
	var ids []string
	for _, r := range rows {
		if r.CreatorID == "" {
			continue
		}
		if _, ok := seen[r.CreatorID]; ok {
			continue
		}
		seen[r.CreatorID] = struct{}{}
		ids = append(ids, r.CreatorID)
	}
	return ids
}

// ResolveCreators fills in creator display names with one batched identity
// lookup. A failed lookup or an unknown identifier degrades to a truncated
// identifier; it never fails the build.
func (b *Builder) ResolveCreators(ctx context.Context, led *Ledger) {
	names := make(map[string]string, len(led.CreatorIDs))
	if len(led.CreatorIDs) > 0 {
		operators, err := b.store.OperatorsByID(ctx, led.CreatorIDs)
		if err != nil {
			slog.Warn("operator lookup failed, falling back to identifiers", "error", err)
		}
		for _, op := range operators {
			names[op.ID] = op.DisplayName
		}
	}

	for i := range led.Rows {
		r := &led.Rows[i]
		if r.CreatorID == "" {
			continue
		}
		if name, ok := names[r.CreatorID]; ok && name != "" {
			r.CreatorName = name
		} else {
			r.CreatorName = truncateID(r.CreatorID)
		}
	}
}

func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
