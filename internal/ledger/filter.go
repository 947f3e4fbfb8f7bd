package ledger

import (
	"strconv"
	"strings"

	"github.com/danukusuma/mutasi/internal/model"
	"github.com/danukusuma/mutasi/internal/service"
)

// Filter is a set of independent predicates applied to an already-built
// ledger. Predicates compose by AND; an unset predicate matches everything.
// Applying a filter never re-fetches and never re-numbers.
type Filter struct {
	// Seq is the raw sequence-number input. Non-numeric input disables the
	// predicate rather than erroring.
	Seq string
	// Search is a case-insensitive substring match over the description
	// joined with the bank lines.
	Search string
	// Category matches exactly when set.
	Category model.Category
	// BankID matches exactly when positive.
	BankID int64
	// Range bounds the click time inclusively, using the same UTC+7
	// day-derived instants as the build itself.
	Range *service.DateRange
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	_, seqActive := f.seq()
	return !seqActive &&
		strings.TrimSpace(f.Search) == "" &&
		f.Category == "" &&
		f.BankID <= 0 &&
		f.Range == nil
}

func (f Filter) seq() (int, bool) {
	s := strings.TrimSpace(f.Seq)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Malformed input means "filter not applied", not an error.
		return 0, false
	}
	return n, true
}

// Apply returns the rows matching every active predicate, preserving order.
// With no active predicate it returns its input unchanged.
func (f Filter) Apply(rows []Row) []Row {
	if f.IsZero() {
		return rows
	}

	seq, seqActive := f.seq()
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if seqActive && r.Seq != seq {
			continue
		}
		if search != "" && !r.matchesSearch(search) {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.BankID > 0 && r.BankID != f.BankID {
			continue
		}
		if f.Range != nil && !f.Range.Contains(r.ClickTime) {
			continue
		}
		out = append(out, r)
	}
	return out
}
