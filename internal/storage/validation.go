// Package storage provides the data persistence layer for the mutasi application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danukusuma/mutasi/internal/model"
	"github.com/shopspring/decimal"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidTenant    = errors.New("tenant id must be positive")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidRecord    = errors.New("invalid record")
	ErrInvalidBank      = errors.New("invalid bank")
	ErrInvalidOperator  = errors.New("invalid operator")
	ErrInvalidLead      = errors.New("invalid lead")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTenant ensures a tenant identifier is usable.
func validateTenant(tenantID int64) error {
	if tenantID <= 0 {
		return ErrInvalidTenant
	}
	return nil
}

// validateBankRef ensures a bank reference points somewhere.
func validateBankRef(bankID int64, field string) error {
	if bankID <= 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRecord, field)
	}
	return nil
}

// validateAmount rejects the zero-value decimal only when the record
// requires a magnitude; adjustments may legitimately carry zero deltas so
// callers opt in.
func validateAmount(amount decimal.Decimal, field string) error {
	if amount.IsZero() {
		return fmt.Errorf("%w: zero %s", ErrInvalidRecord, field)
	}
	return nil
}

func validateCreatedAt(t time.Time) error {
	if t.IsZero() {
		return fmt.Errorf("%w: missing created time", ErrInvalidRecord)
	}
	return nil
}

// validateBank validates a bank.
func validateBank(bank *model.Bank) error {
	if bank == nil {
		return fmt.Errorf("%w: bank", ErrNilParameter)
	}
	if strings.TrimSpace(bank.Code) == "" {
		return fmt.Errorf("%w: missing code", ErrInvalidBank)
	}
	if strings.TrimSpace(bank.AccountName) == "" {
		return fmt.Errorf("%w: missing account name", ErrInvalidBank)
	}
	return nil
}

// validateOperator validates an operator identity.
func validateOperator(op *model.Operator) error {
	if op == nil {
		return fmt.Errorf("%w: operator", ErrNilParameter)
	}
	if strings.TrimSpace(op.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidOperator)
	}
	if strings.TrimSpace(op.DisplayName) == "" {
		return fmt.Errorf("%w: missing display name", ErrInvalidOperator)
	}
	return nil
}

// validateLead validates a lead.
func validateLead(lead *model.Lead) error {
	if lead == nil {
		return fmt.Errorf("%w: lead", ErrNilParameter)
	}
	if strings.TrimSpace(lead.Code) == "" {
		return fmt.Errorf("%w: missing code", ErrInvalidLead)
	}
	if strings.TrimSpace(lead.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidLead)
	}
	return nil
}
