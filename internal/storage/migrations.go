package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS banks (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					tenant_id INTEGER NOT NULL,
					code TEXT NOT NULL,
					account_name TEXT NOT NULL,
					account_number TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_banks_tenant ON banks(tenant_id)`,

				`CREATE TABLE IF NOT EXISTS operators (
					id TEXT NOT NULL,
					tenant_id INTEGER NOT NULL,
					display_name TEXT NOT NULL,
					PRIMARY KEY (id, tenant_id)
				)`,

				`CREATE TABLE IF NOT EXISTS deposits (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					tenant_id INTEGER NOT NULL,
					bank_id INTEGER NOT NULL,
					lead_code TEXT NOT NULL DEFAULT '',
					net_amount TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					opened_at DATETIME,
					finalized_at DATETIME,
					created_by TEXT NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL,
					FOREIGN KEY (bank_id) REFERENCES banks(id)
				)`,

				`CREATE TABLE IF NOT EXISTS withdrawals (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					tenant_id INTEGER NOT NULL,
					bank_id INTEGER NOT NULL,
					lead_code TEXT NOT NULL DEFAULT '',
					net_amount TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					opened_at DATETIME,
					finalized_at DATETIME,
					created_by TEXT NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL,
					FOREIGN KEY (bank_id) REFERENCES banks(id)
				)`,

				`CREATE TABLE IF NOT EXISTS pending_deposits (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					tenant_id INTEGER NOT NULL,
					bank_id INTEGER NOT NULL,
					net_amount TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					finalized_at DATETIME,
					created_by TEXT NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL,
					FOREIGN KEY (bank_id) REFERENCES banks(id)
				)`,

				`CREATE TABLE IF NOT EXISTS bank_adjustments (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					tenant_id INTEGER NOT NULL,
					bank_id INTEGER NOT NULL,
					delta TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					finalized_at DATETIME,
					created_by TEXT NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL,
					FOREIGN KEY (bank_id) REFERENCES banks(id)
				)`,

				`CREATE TABLE IF NOT EXISTS bank_expenses (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					tenant_id INTEGER NOT NULL,
					bank_id INTEGER NOT NULL,
					amount TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					finalized_at DATETIME,
					created_by TEXT NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL,
					FOREIGN KEY (bank_id) REFERENCES banks(id)
				)`,

				`CREATE TABLE IF NOT EXISTS interbank_transfers (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					tenant_id INTEGER NOT NULL,
					from_bank_id INTEGER NOT NULL,
					to_bank_id INTEGER NOT NULL,
					gross_amount TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					from_at DATETIME,
					to_at DATETIME,
					created_by TEXT NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL,
					FOREIGN KEY (from_bank_id) REFERENCES banks(id),
					FOREIGN KEY (to_bank_id) REFERENCES banks(id)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add range-filter indexes on click-time columns",
		Up: func(tx *sql.Tx) error {
			// Deposits and withdrawals are range-filtered on opened_at, the
			// other categories on created_at.
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_deposits_opened ON deposits(tenant_id, opened_at)`,
				`CREATE INDEX IF NOT EXISTS idx_withdrawals_opened ON withdrawals(tenant_id, opened_at)`,
				`CREATE INDEX IF NOT EXISTS idx_pending_deposits_created ON pending_deposits(tenant_id, created_at)`,
				`CREATE INDEX IF NOT EXISTS idx_bank_adjustments_created ON bank_adjustments(tenant_id, created_at)`,
				`CREATE INDEX IF NOT EXISTS idx_bank_expenses_created ON bank_expenses(tenant_id, created_at)`,
				`CREATE INDEX IF NOT EXISTS idx_interbank_transfers_created ON interbank_transfers(tenant_id, created_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add leads table",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS leads (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					tenant_id INTEGER NOT NULL,
					code TEXT NOT NULL,
					name TEXT NOT NULL,
					phone TEXT NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL,
					UNIQUE (tenant_id, code)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_leads_tenant ON leads(tenant_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion reports the current schema version of the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
