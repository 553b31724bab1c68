package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asakaida/matchday/internal/infrastructure/config"
)

func TestBuildDSN_Write(t *testing.T) {
	dsn := buildDSN("/tmp/matches.db", "write")

	assert.Contains(t, dsn, "_journal_mode=WAL")
	assert.Contains(t, dsn, "_busy_timeout=5000")
	assert.Contains(t, dsn, "_synchronous=NORMAL")
	assert.Contains(t, dsn, "_foreign_keys=on")
	assert.Contains(t, dsn, "_txlock=immediate")
	assert.True(t, strings.HasPrefix(dsn, "/tmp/matches.db?"))
}

func TestBuildDSN_Read(t *testing.T) {
	dsn := buildDSN("/tmp/matches.db", "read")

	assert.Contains(t, dsn, "_journal_mode=WAL")
	assert.NotContains(t, dsn, "_txlock")
}

func TestOpenSQLite_InvalidMode(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "matches.db"), "invalid", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid SQLite mode")
}

func TestOpenSQLite_WritePool(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "matches.db"), "write", 0)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var journalMode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", strings.ToLower(journalMode))

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestNewSQLite_RunMigrations(t *testing.T) {
	store, err := NewSQLite(&config.MatchStoreConfig{
		Path:      filepath.Join(t.TempDir(), "matches.db"),
		ReadConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.RunMigrations())
	// a second run is a no-op
	require.NoError(t, store.RunMigrations())

	var name string
	err = store.ReadDB.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'matches'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "matches", name)

	version, err := SQLiteMigrationVersion(store.WriteDB)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	assert.Equal(t, 2, store.ReadDB.Stats().MaxOpenConnections)
	assert.NoError(t, store.HealthCheck(context.Background()))
}

func TestSQLite_CloseNilPools(t *testing.T) {
	s := &SQLite{}
	assert.NoError(t, s.Close())
}
