package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// CounterEntry is one row of a leaderboard query
type CounterEntry struct {
	Sender string
	Count  int64
}

// IncrementCounter bumps the message counter for a sender and returns the
// new count. The upsert makes the read-modify-write atomic per sender even
// with concurrent dispatch goroutines.
func (db *DB) IncrementCounter(sender string) (int64, error) {
	query := `
		INSERT INTO counters (sender, count, updated_at)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(sender) DO UPDATE SET
			count = count + 1,
			updated_at = CURRENT_TIMESTAMP
		RETURNING count
	`
	var count int64
	if err := db.conn.QueryRow(query, sender).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to increment counter for %s: %w", sender, err)
	}
	return count, nil
}

// GetCounter returns the message count for a sender, 0 if the sender has
// never been seen.
func (db *DB) GetCounter(sender string) (int64, error) {
	var count int64
	err := db.conn.QueryRow("SELECT count FROM counters WHERE sender = ?", sender).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get counter for %s: %w", sender, err)
	}
	return count, nil
}

// SumCounters returns the combined message count of the allowed senders
func (db *DB) SumCounters(allowed []string) (int64, error) {
	if len(allowed) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(allowed))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf("SELECT COALESCE(SUM(count), 0) FROM counters WHERE sender IN (%s)", placeholders)

	args := make([]interface{}, 0, len(allowed))
	for _, s := range allowed {
		args = append(args, s)
	}

	var total int64
	if err := db.conn.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum counters: %w", err)
	}
	return total, nil
}

// TopCounters returns up to k senders ordered by count descending, restricted
// to the allowed set. Ties break on sender for a stable order. An empty
// allowed set yields an empty result.
func (db *DB) TopCounters(k int, allowed []string) ([]CounterEntry, error) {
	if k <= 0 || len(allowed) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(allowed))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`
		SELECT sender, count FROM counters
		WHERE sender IN (%s)
		ORDER BY count DESC, sender ASC
		LIMIT ?
	`, placeholders)

	args := make([]interface{}, 0, len(allowed)+1)
	for _, s := range allowed {
		args = append(args, s)
	}
	args = append(args, k)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top counters: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []CounterEntry
	for rows.Next() {
		var e CounterEntry
		if err := rows.Scan(&e.Sender, &e.Count); err != nil {
			return nil, fmt.Errorf("failed to scan counter row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counter rows: %w", err)
	}

	return entries, nil
}
