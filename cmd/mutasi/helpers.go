package main

import (
	"context"
	"fmt"

	"github.com/danukusuma/mutasi/internal/common"
	"github.com/danukusuma/mutasi/internal/config"
	"github.com/danukusuma/mutasi/internal/ledger"
	"github.com/danukusuma/mutasi/internal/service"
	"github.com/danukusuma/mutasi/internal/storage"
	"github.com/spf13/viper"
)

// initStorage initializes the tenant-scoped storage with proper path
// expansion and auto-migration.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetString("database.path"))

	tenant := viper.GetInt64("tenant")
	if tenant <= 0 {
		return nil, common.NewUserError("tenant must be a positive identifier", common.ErrNoTenant)
	}

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath, tenant)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// rangeFromFlags converts the --from/--to civil dates into an instant
// window for the build query.
func rangeFromFlags(from, to string) (service.RecordQuery, error) {
	r, err := ledger.DayBounds(from, to)
	if err != nil {
		return service.RecordQuery{}, err
	}
	return service.RecordQuery{Range: r}, nil
}
