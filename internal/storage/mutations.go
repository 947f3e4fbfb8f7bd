package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danukusuma/mutasi/internal/model"
	"github.com/danukusuma/mutasi/internal/service"
	"github.com/shopspring/decimal"
)

// clickTimeColumn maps each category to the column its range filter applies
// to. Deposits and withdrawals filter on opened_at even though their click
// time falls back to created_at when opened_at is absent; the other four
// filter on created_at. The mismatch is load-bearing for downstream
// sequence numbering and must not be normalized.
var clickTimeColumn = map[model.Category]string{
	model.CategoryDeposit:           "opened_at",
	model.CategoryWithdrawal:        "opened_at",
	model.CategoryPendingDeposit:    "created_at",
	model.CategoryBankAdjustment:    "created_at",
	model.CategoryBankExpense:       "created_at",
	model.CategoryInterbankTransfer: "created_at",
}

// appendRange adds the inclusive click-time window to a query when one was
// requested. Bounds are normalized to UTC so stored and bound values
// compare consistently.
func appendRange(query string, args []any, column string, r *service.DateRange) (string, []any) {
	if r == nil {
		return query, args
	}
	query += fmt.Sprintf(" AND %s >= ? AND %s <= ?", column, column)
	args = append(args, r.Start.UTC(), r.End.UTC())
	return query, args
}

func scanDecimal(raw string, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: bad %s %q", ErrInvalidRecord, field, raw)
	}
	return d, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// Deposits returns the tenant's deposits, optionally windowed on opened_at.
func (s *SQLiteStorage) Deposits(ctx context.Context, q service.RecordQuery) ([]model.Deposit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, bank_id, lead_code, net_amount, description,
		       opened_at, finalized_at, created_by, created_at
		FROM deposits
		WHERE tenant_id = ?`
	args := []any{s.tenantID}
	query, args = appendRange(query, args, clickTimeColumn[model.CategoryDeposit], q.Range)
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.Deposit
	for rows.Next() {
		var (
			d         model.Deposit
			amount    string
			opened    sql.NullTime
			finalized sql.NullTime
		)
		if err := rows.Scan(&d.ID, &d.BankID, &d.LeadCode, &amount, &d.Description,
			&opened, &finalized, &d.CreatedBy, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		if d.NetAmount, err = scanDecimal(amount, "net_amount"); err != nil {
			return nil, err
		}
		d.OpenedAt = nullableTime(opened)
		d.FinalizedAt = nullableTime(finalized)
		records = append(records, d)
	}
	return records, rows.Err()
}

// Withdrawals returns the tenant's withdrawals, optionally windowed on opened_at.
func (s *SQLiteStorage) Withdrawals(ctx context.Context, q service.RecordQuery) ([]model.Withdrawal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, bank_id, lead_code, net_amount, description,
		       opened_at, finalized_at, created_by, created_at
		FROM withdrawals
		WHERE tenant_id = ?`
	args := []any{s.tenantID}
	query, args = appendRange(query, args, clickTimeColumn[model.CategoryWithdrawal], q.Range)
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.Withdrawal
	for rows.Next() {
		var (
			w         model.Withdrawal
			amount    string
			opened    sql.NullTime
			finalized sql.NullTime
		)
		if err := rows.Scan(&w.ID, &w.BankID, &w.LeadCode, &amount, &w.Description,
			&opened, &finalized, &w.CreatedBy, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal: %w", err)
		}
		if w.NetAmount, err = scanDecimal(amount, "net_amount"); err != nil {
			return nil, err
		}
		w.OpenedAt = nullableTime(opened)
		w.FinalizedAt = nullableTime(finalized)
		records = append(records, w)
	}
	return records, rows.Err()
}

// PendingDeposits returns the tenant's unassigned deposits, optionally
// windowed on created_at.
func (s *SQLiteStorage) PendingDeposits(ctx context.Context, q service.RecordQuery) ([]model.PendingDeposit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, bank_id, net_amount, description,
		       finalized_at, created_by, created_at
		FROM pending_deposits
		WHERE tenant_id = ?`
	args := []any{s.tenantID}
	query, args = appendRange(query, args, clickTimeColumn[model.CategoryPendingDeposit], q.Range)
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending deposits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.PendingDeposit
	for rows.Next() {
		var (
			p         model.PendingDeposit
			amount    string
			finalized sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.BankID, &amount, &p.Description,
			&finalized, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending deposit: %w", err)
		}
		if p.NetAmount, err = scanDecimal(amount, "net_amount"); err != nil {
			return nil, err
		}
		p.FinalizedAt = nullableTime(finalized)
		records = append(records, p)
	}
	return records, rows.Err()
}

// BankAdjustments returns the tenant's balance corrections, optionally
// windowed on created_at.
func (s *SQLiteStorage) BankAdjustments(ctx context.Context, q service.RecordQuery) ([]model.BankAdjustment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, bank_id, delta, description,
		       finalized_at, created_by, created_at
		FROM bank_adjustments
		WHERE tenant_id = ?`
	args := []any{s.tenantID}
	query, args = appendRange(query, args, clickTimeColumn[model.CategoryBankAdjustment], q.Range)
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank adjustments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.BankAdjustment
	for rows.Next() {
		var (
			a         model.BankAdjustment
			delta     string
			finalized sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.BankID, &delta, &a.Description,
			&finalized, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bank adjustment: %w", err)
		}
		if a.Delta, err = scanDecimal(delta, "delta"); err != nil {
			return nil, err
		}
		a.FinalizedAt = nullableTime(finalized)
		records = append(records, a)
	}
	return records, rows.Err()
}

// BankExpenses returns the tenant's bank expenses, optionally windowed on
// created_at.
func (s *SQLiteStorage) BankExpenses(ctx context.Context, q service.RecordQuery) ([]model.BankExpense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, bank_id, amount, description,
		       finalized_at, created_by, created_at
		FROM bank_expenses
		WHERE tenant_id = ?`
	args := []any{s.tenantID}
	query, args = appendRange(query, args, clickTimeColumn[model.CategoryBankExpense], q.Range)
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.BankExpense
	for rows.Next() {
		var (
			e         model.BankExpense
			amount    string
			finalized sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.BankID, &amount, &e.Description,
			&finalized, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bank expense: %w", err)
		}
		if e.Amount, err = scanDecimal(amount, "amount"); err != nil {
			return nil, err
		}
		e.FinalizedAt = nullableTime(finalized)
		records = append(records, e)
	}
	return records, rows.Err()
}

// InterbankTransfers returns the tenant's interbank transfers, optionally
// windowed on created_at.
func (s *SQLiteStorage) InterbankTransfers(ctx context.Context, q service.RecordQuery) ([]model.InterbankTransfer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, from_bank_id, to_bank_id, gross_amount, description,
		       from_at, to_at, created_by, created_at
		FROM interbank_transfers
		WHERE tenant_id = ?`
	args := []any{s.tenantID}
	query, args = appendRange(query, args, clickTimeColumn[model.CategoryInterbankTransfer], q.Range)
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interbank transfers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.InterbankTransfer
	for rows.Next() {
		var (
			t      model.InterbankTransfer
			gross  string
			fromAt sql.NullTime
			toAt   sql.NullTime
		)
		if err := rows.Scan(&t.ID, &t.FromBankID, &t.ToBankID, &gross, &t.Description,
			&fromAt, &toAt, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interbank transfer: %w", err)
		}
		if t.GrossAmount, err = scanDecimal(gross, "gross_amount"); err != nil {
			return nil, err
		}
		t.FromAt = nullableTime(fromAt)
		t.ToAt = nullableTime(toAt)
		records = append(records, t)
	}
	return records, rows.Err()
}

func utcOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// SaveDeposits inserts deposits for the tenant.
func (s *SQLiteStorage) SaveDeposits(ctx context.Context, records []model.Deposit) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: deposits", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO deposits (
			tenant_id, bank_id, lead_code, net_amount, description,
			opened_at, finalized_at, created_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, d := range records {
		if err := validateBankRef(d.BankID, "bank_id"); err != nil {
			return fmt.Errorf("deposit at index %d: %w", i, err)
		}
		if err := validateAmount(d.NetAmount, "net_amount"); err != nil {
			return fmt.Errorf("deposit at index %d: %w", i, err)
		}
		if err := validateCreatedAt(d.CreatedAt); err != nil {
			return fmt.Errorf("deposit at index %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			s.tenantID, d.BankID, d.LeadCode, d.NetAmount.String(), d.Description,
			utcOrNil(d.OpenedAt), utcOrNil(d.FinalizedAt), d.CreatedBy, d.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert deposit: %w", err)
		}
	}

	return tx.Commit()
}

// SaveWithdrawals inserts withdrawals for the tenant.
func (s *SQLiteStorage) SaveWithdrawals(ctx context.Context, records []model.Withdrawal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: withdrawals", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO withdrawals (
			tenant_id, bank_id, lead_code, net_amount, description,
			opened_at, finalized_at, created_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, w := range records {
		if err := validateBankRef(w.BankID, "bank_id"); err != nil {
			return fmt.Errorf("withdrawal at index %d: %w", i, err)
		}
		if err := validateAmount(w.NetAmount, "net_amount"); err != nil {
			return fmt.Errorf("withdrawal at index %d: %w", i, err)
		}
		if err := validateCreatedAt(w.CreatedAt); err != nil {
			return fmt.Errorf("withdrawal at index %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			s.tenantID, w.BankID, w.LeadCode, w.NetAmount.String(), w.Description,
			utcOrNil(w.OpenedAt), utcOrNil(w.FinalizedAt), w.CreatedBy, w.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert withdrawal: %w", err)
		}
	}

	return tx.Commit()
}

// SavePendingDeposits inserts pending deposits for the tenant.
func (s *SQLiteStorage) SavePendingDeposits(ctx context.Context, records []model.PendingDeposit) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: pending deposits", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pending_deposits (
			tenant_id, bank_id, net_amount, description,
			finalized_at, created_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, p := range records {
		if err := validateBankRef(p.BankID, "bank_id"); err != nil {
			return fmt.Errorf("pending deposit at index %d: %w", i, err)
		}
		if err := validateAmount(p.NetAmount, "net_amount"); err != nil {
			return fmt.Errorf("pending deposit at index %d: %w", i, err)
		}
		if err := validateCreatedAt(p.CreatedAt); err != nil {
			return fmt.Errorf("pending deposit at index %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			s.tenantID, p.BankID, p.NetAmount.String(), p.Description,
			utcOrNil(p.FinalizedAt), p.CreatedBy, p.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert pending deposit: %w", err)
		}
	}

	return tx.Commit()
}

// SaveBankAdjustments inserts balance corrections for the tenant.
func (s *SQLiteStorage) SaveBankAdjustments(ctx context.Context, records []model.BankAdjustment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: bank adjustments", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bank_adjustments (
			tenant_id, bank_id, delta, description,
			finalized_at, created_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, a := range records {
		if err := validateBankRef(a.BankID, "bank_id"); err != nil {
			return fmt.Errorf("bank adjustment at index %d: %w", i, err)
		}
		if err := validateCreatedAt(a.CreatedAt); err != nil {
			return fmt.Errorf("bank adjustment at index %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			s.tenantID, a.BankID, a.Delta.String(), a.Description,
			utcOrNil(a.FinalizedAt), a.CreatedBy, a.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert bank adjustment: %w", err)
		}
	}

	return tx.Commit()
}

// SaveBankExpenses inserts bank expenses for the tenant.
func (s *SQLiteStorage) SaveBankExpenses(ctx context.Context, records []model.BankExpense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: bank expenses", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bank_expenses (
			tenant_id, bank_id, amount, description,
			finalized_at, created_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, e := range records {
		if err := validateBankRef(e.BankID, "bank_id"); err != nil {
			return fmt.Errorf("bank expense at index %d: %w", i, err)
		}
		if err := validateAmount(e.Amount, "amount"); err != nil {
			return fmt.Errorf("bank expense at index %d: %w", i, err)
		}
		if err := validateCreatedAt(e.CreatedAt); err != nil {
			return fmt.Errorf("bank expense at index %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			s.tenantID, e.BankID, e.Amount.String(), e.Description,
			utcOrNil(e.FinalizedAt), e.CreatedBy, e.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert bank expense: %w", err)
		}
	}

	return tx.Commit()
}

// SaveInterbankTransfers inserts interbank transfers for the tenant.
func (s *SQLiteStorage) SaveInterbankTransfers(ctx context.Context, records []model.InterbankTransfer) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: interbank transfers", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO interbank_transfers (
			tenant_id, from_bank_id, to_bank_id, gross_amount, description,
			from_at, to_at, created_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range records {
		if err := validateBankRef(t.FromBankID, "from_bank_id"); err != nil {
			return fmt.Errorf("interbank transfer at index %d: %w", i, err)
		}
		if err := validateBankRef(t.ToBankID, "to_bank_id"); err != nil {
			return fmt.Errorf("interbank transfer at index %d: %w", i, err)
		}
		if err := validateAmount(t.GrossAmount, "gross_amount"); err != nil {
			return fmt.Errorf("interbank transfer at index %d: %w", i, err)
		}
		if err := validateCreatedAt(t.CreatedAt); err != nil {
			return fmt.Errorf("interbank transfer at index %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			s.tenantID, t.FromBankID, t.ToBankID, t.GrossAmount.String(), t.Description,
			utcOrNil(t.FromAt), utcOrNil(t.ToAt), t.CreatedBy, t.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert interbank transfer: %w", err)
		}
	}

	return tx.Commit()
}
