package database

import "embed"

// migrationsFS contains the SQL migrations of both stores.
// migrations/postgres uses golang-migrate naming, migrations/sqlite uses goose annotations.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

const (
	postgresMigrationsDir = "migrations/postgres"
	sqliteMigrationsDir   = "migrations/sqlite"
)
