package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	store := newTestStorage(t)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// Second run is a no-op.
	require.NoError(t, store.Migrate(ctx))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrate_VersionsAreOrdered(t *testing.T) {
	last := 0
	for _, m := range migrations {
		require.Greater(t, m.Version, last, "migration versions must strictly increase")
		require.NotEmpty(t, m.Description)
		last = m.Version
	}
	require.Equal(t, ExpectedSchemaVersion, last)
}

func TestMigrate_SharedDatabaseAcrossTenants(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shared.db")

	// Both tenant handles migrate the same file without conflict.
	a := newTenantStorage(t, dbPath, 1)
	b := newTenantStorage(t, dbPath, 2)

	va, err := a.SchemaVersion(context.Background())
	require.NoError(t, err)
	vb, err := b.SchemaVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, va, vb)
}
