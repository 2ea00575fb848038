// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "test.db")
}

func TestOpenAppliesPragmas(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, openTemp(t), DefaultConfig())
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrateIsIncremental(t *testing.T) {
	ctx := context.Background()
	path := openTemp(t)
	db, err := Open(ctx, path, DefaultConfig())
	require.NoError(t, err)
	defer db.Close()

	steps := []string{
		`CREATE TABLE a (id TEXT PRIMARY KEY)`,
		`CREATE TABLE b (id TEXT PRIMARY KEY)`,
	}
	require.NoError(t, Migrate(ctx, db, steps[:1]))
	require.NoError(t, Migrate(ctx, db, steps))
	require.NoError(t, Migrate(ctx, db, steps), "re-running is a no-op")

	var version int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, 2, version)
}

func TestMigrateRollsBackFailedStep(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, openTemp(t), DefaultConfig())
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(ctx, db, []string{`CREATE TABLE a (id TEXT)`, `NOT SQL`})
	require.Error(t, err)

	var version int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestQuickCheckHealthy(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, openTemp(t), DefaultConfig())
	require.NoError(t, err)
	defer db.Close()

	problems, err := QuickCheck(ctx, db)
	require.NoError(t, err)
	assert.Nil(t, problems)
}
