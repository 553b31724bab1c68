package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/asakaida/matchday/internal/infrastructure/config"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// SQLite DSN parameters for the matches store
const (
	defaultBusyTimeout = "5000" // 5 seconds
	defaultSynchronous = "NORMAL"
	defaultJournalMode = "WAL"
	defaultReadConns   = 4
)

// OpenSQLite opens a *sql.DB pool for the given SQLite file path.
//
// mode controls write-safety and pool sizing:
//   - "write": MaxOpenConns=1, includes _txlock=immediate
//   - "read":  MaxOpenConns=maxOpen (0 uses 4)
func OpenSQLite(path string, mode string, maxOpen int) (*sql.DB, error) {
	if mode != "read" && mode != "write" {
		return nil, fmt.Errorf("invalid SQLite mode %q: must be \"read\" or \"write\"", mode)
	}

	db, err := sql.Open("sqlite3", buildDSN(path, mode))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite (%s): %w", mode, err)
	}

	switch mode {
	case "write":
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	case "read":
		if maxOpen <= 0 {
			maxOpen = defaultReadConns
		}
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen)
	}
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite (%s): %w", mode, err)
	}

	return db, nil
}

// SQLite holds the write and read pools of the matches store
type SQLite struct {
	WriteDB *sql.DB
	ReadDB  *sql.DB
}

// NewSQLite opens the write pool and the read pool for the same SQLite file
func NewSQLite(cfg *config.MatchStoreConfig) (*SQLite, error) {
	writeDB, err := OpenSQLite(cfg.Path, "write", 0)
	if err != nil {
		return nil, err
	}

	readDB, err := OpenSQLite(cfg.Path, "read", cfg.ReadConns)
	if err != nil {
		_ = writeDB.Close()
		return nil, err
	}

	return &SQLite{WriteDB: writeDB, ReadDB: readDB}, nil
}

// RunMigrations applies all pending goose migrations on the write pool
func (s *SQLite) RunMigrations() error {
	return RunSQLiteMigrations(s.WriteDB)
}

// HealthCheck checks if both pools are usable
func (s *SQLite) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.WriteDB.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite health check failed: %w", err)
	}
	if err := s.ReadDB.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite health check failed: %w", err)
	}
	return nil
}

// Close closes both pools
func (s *SQLite) Close() error {
	var firstErr error
	for _, db := range []*sql.DB{s.WriteDB, s.ReadDB} {
		if db == nil {
			continue
		}
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RunSQLiteMigrations executes all pending goose migrations against db
func RunSQLiteMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, sqliteMigrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// SQLiteMigrationVersion returns the goose version applied to db
func SQLiteMigrationVersion(db *sql.DB) (int64, error) {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, fmt.Errorf("goose set dialect: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("goose version: %w", err)
	}

	return version, nil
}

// buildDSN constructs a SQLite DSN with hardened parameters
func buildDSN(path string, mode string) string {
	params := url.Values{}
	params.Set("_journal_mode", defaultJournalMode)
	params.Set("_busy_timeout", defaultBusyTimeout)
	params.Set("_synchronous", defaultSynchronous)
	params.Set("_foreign_keys", "on")

	if mode == "write" {
		params.Set("_txlock", "immediate")
	}

	return path + "?" + params.Encode()
}
