package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/danukusuma/mutasi/internal/model"
	"github.com/stretchr/testify/require"
)

// newTestStorage opens a migrated store on a temp database, scoped to
// tenant 1.
func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	return newTenantStorage(t, filepath.Join(t.TempDir(), "test.db"), 1)
}

func newTenantStorage(t *testing.T, dbPath string, tenantID int64) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(dbPath, tenantID)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// mustSaveBank creates a bank and returns it with its generated ID.
func mustSaveBank(t *testing.T, store *SQLiteStorage, code string) model.Bank {
	t.Helper()

	bank := model.Bank{Code: code, AccountName: "PT Test", AccountNumber: "0001"}
	require.NoError(t, store.SaveBank(context.Background(), &bank))
	require.Positive(t, bank.ID)
	return bank
}

func TestNewSQLiteStorage_Validation(t *testing.T) {
	tests := []struct {
		name     string
		dbPath   string
		tenantID int64
	}{
		{name: "empty path", dbPath: "", tenantID: 1},
		{name: "whitespace path", dbPath: "   ", tenantID: 1},
		{name: "zero tenant", dbPath: "test.db", tenantID: 0},
		{name: "negative tenant", dbPath: "test.db", tenantID: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewSQLiteStorage(tt.dbPath, tt.tenantID)
			require.Error(t, err)
			require.Nil(t, store)
		})
	}
}

func TestSQLiteStorage_TenantID(t *testing.T) {
	store := newTestStorage(t)
	require.Equal(t, int64(1), store.TenantID())
}
