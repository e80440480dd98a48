package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the database connection and provides access to database operations
type DB struct {
	conn *sql.DB
	path string
}

// New creates a new database connection
// If the database file doesn't exist, it will be created
func New(dbPath string) (*DB, error) {
	// Ensure the data directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: dbPath,
	}

	// WAL gives readers and the dispatch loop's writers independent progress
	if err := db.configureWAL(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to configure WAL mode: %w", err)
	}

	if err := db.runMigrations(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// NewTest creates a new test database connection using an in-memory database
// This is useful for testing without affecting the production database
func NewTest() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping test database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: ":memory:",
	}

	if err := db.configureWAL(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to configure WAL mode: %w", err)
	}

	if err := db.runMigrations(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations on test database: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Conn returns the underlying database connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Vacuum reclaims free pages. Run periodically, not on the hot path.
func (db *DB) Vacuum() error {
	if _, err := db.conn.Exec("VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}

// configureWAL enables Write-Ahead Logging mode and configures checkpoint settings
func (db *DB) configureWAL() error {
	var journalMode string
	err := db.conn.QueryRow("PRAGMA journal_mode=WAL").Scan(&journalMode)
	if err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// In-memory databases report "memory" and that is fine for tests
	if journalMode != "wal" && journalMode != "memory" {
		return fmt.Errorf("failed to enable WAL mode: got %s instead", journalMode)
	}

	// Fewer checkpoints, better sustained write throughput
	_, err = db.conn.Exec("PRAGMA wal_autocheckpoint=5000")
	if err != nil {
		return fmt.Errorf("failed to configure WAL autocheckpoint: %w", err)
	}

	// NORMAL is safe under WAL and avoids an fsync per transaction
	_, err = db.conn.Exec("PRAGMA synchronous=NORMAL")
	if err != nil {
		return fmt.Errorf("failed to configure synchronous mode: %w", err)
	}

	// Wait up to 5 seconds on a locked database instead of failing immediately
	_, err = db.conn.Exec("PRAGMA busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to configure busy timeout: %w", err)
	}

	return nil
}
