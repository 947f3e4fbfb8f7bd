// Package ledger builds the unified mutation view: the merged, normalized,
// sequence-numbered projection of all six financial-event categories.
package ledger

import (
	"strings"
	"time"

	"github.com/danukusuma/mutasi/internal/model"
	"github.com/shopspring/decimal"
)

// Row is one line of the unified mutation ledger. Rows are derived on every
// build and have no identity of their own; Seq is assigned per load and is
// not a source table key.
type Row struct {
	ClickTime    time.Time
	ChosenTop    *time.Time
	ChosenBottom *time.Time
	Category     model.Category
	Description  string
	CreatorID    string
	CreatorName  string
	BankLines    []string
	Amount       decimal.Decimal
	Seq          int
	BankID       int64
}

// clickTimeLayout is the canonical string form of a click time. Rows are
// ordered by lexicographic comparison of this form, not by numeric instant
// comparison.
const clickTimeLayout = "2006-01-02T15:04:05.000Z07:00"

func (r Row) clickKey() string {
	return r.ClickTime.UTC().Format(clickTimeLayout)
}

// matchesSearch reports whether needle (already lower-cased) occurs in the
// row's description concatenated with its joined bank lines.
func (r Row) matchesSearch(needle string) bool {
	haystack := strings.ToLower(r.Description + " " + strings.Join(r.BankLines, " "))
	return strings.Contains(haystack, needle)
}
