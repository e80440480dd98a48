package database

import (
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	UpSQL   string
}

// migrations lists all schema migrations in order. New migrations append
// to this slice with the next version number.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_counters",
		UpSQL: `
			CREATE TABLE IF NOT EXISTS counters (
				sender     TEXT PRIMARY KEY,
				count      INTEGER NOT NULL DEFAULT 0,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		Version: 2,
		Name:    "create_messages",
		UpSQL: `
			CREATE TABLE IF NOT EXISTS messages (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				message_id TEXT NOT NULL,
				chat       TEXT NOT NULL,
				sender     TEXT NOT NULL,
				body       TEXT,
				timestamp  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		Version: 3,
		Name:    "index_messages_timestamp",
		UpSQL: `
			CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp)
		`,
	},
	{
		Version: 4,
		Name:    "create_metrics",
		UpSQL: `
			CREATE TABLE IF NOT EXISTS metrics (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				metric_type TEXT NOT NULL,
				metric_name TEXT NOT NULL,
				value       REAL NOT NULL DEFAULT 1.0,
				timestamp   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		Version: 5,
		Name:    "index_metrics_timestamp",
		UpSQL: `
			CREATE INDEX IF NOT EXISTS idx_metrics_timestamp ON metrics(timestamp)
		`,
	},
}

// runMigrations runs all pending database migrations
func (db *DB) runMigrations() error {
	if err := db.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := db.getCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := db.applyMigration(migration); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}
	}

	return nil
}

// ensureMigrationsTable creates the schema_migrations table if it doesn't exist
func (db *DB) ensureMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty   BOOLEAN NOT NULL DEFAULT 0
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

// getCurrentVersion returns the current migration version
func (db *DB) getCurrentVersion() (int, error) {
	var version int
	err := db.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations WHERE dirty = 0").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// applyMigration applies a single migration inside a transaction
func (db *DB) applyMigration(migration Migration) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(migration.UpSQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO schema_migrations (version, dirty) VALUES (?, 0)", migration.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration version: %w", err)
	}

	return tx.Commit()
}
