package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/danukusuma/mutasi/internal/model"
)

// Banks returns every bank visible to the tenant.
func (s *SQLiteStorage) Banks(ctx context.Context) ([]model.Bank, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, account_name, account_number
		FROM banks
		WHERE tenant_id = ?
		ORDER BY code, id
	`, s.tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query banks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var banks []model.Bank
	for rows.Next() {
		var b model.Bank
		if err := rows.Scan(&b.ID, &b.Code, &b.AccountName, &b.AccountNumber); err != nil {
			return nil, fmt.Errorf("failed to scan bank: %w", err)
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

// SaveBank inserts a bank and fills in its generated ID.
func (s *SQLiteStorage) SaveBank(ctx context.Context, bank *model.Bank) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBank(bank); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO banks (tenant_id, code, account_name, account_number)
		VALUES (?, ?, ?, ?)
	`, s.tenantID, bank.Code, bank.AccountName, bank.AccountNumber)
	if err != nil {
		return fmt.Errorf("failed to insert bank: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get bank id: %w", err)
	}
	bank.ID = id
	return nil
}

// OperatorsByID resolves a set of creator identifiers in one query. Unknown
// identifiers are simply absent from the result; callers decide how to
// degrade.
func (s *SQLiteStorage) OperatorsByID(ctx context.Context, ids []string) ([]model.Operator, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids)+1)
	args = append(args, s.tenantID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, display_name
		FROM operators
		WHERE tenant_id = ? AND id IN (%s)
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query operators: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var operators []model.Operator
	for rows.Next() {
		var op model.Operator
		if err := rows.Scan(&op.ID, &op.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan operator: %w", err)
		}
		operators = append(operators, op)
	}
	return operators, rows.Err()
}

// SaveOperator inserts or updates an operator identity.
func (s *SQLiteStorage) SaveOperator(ctx context.Context, op *model.Operator) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOperator(op); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO operators (id, tenant_id, display_name)
		VALUES (?, ?, ?)
		ON CONFLICT (id, tenant_id) DO UPDATE SET display_name = excluded.display_name
	`, op.ID, s.tenantID, op.DisplayName)
	if err != nil {
		return fmt.Errorf("failed to save operator: %w", err)
	}
	return nil
}

// Leads returns every lead belonging to the tenant.
func (s *SQLiteStorage) Leads(ctx context.Context) ([]model.Lead, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, name, phone, created_at
		FROM leads
		WHERE tenant_id = ?
		ORDER BY code
	`, s.tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var leads []model.Lead
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.Phone, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// SaveLead inserts a lead and fills in its generated ID.
func (s *SQLiteStorage) SaveLead(ctx context.Context, lead *model.Lead) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLead(lead); err != nil {
		return err
	}
	if err := validateCreatedAt(lead.CreatedAt); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (tenant_id, code, name, phone, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, s.tenantID, lead.Code, lead.Name, lead.Phone, lead.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get lead id: %w", err)
	}
	lead.ID = id
	return nil
}
