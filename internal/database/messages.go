package database

import (
	"fmt"
)

// LogMessage records an inbound message in the message log. The body is
// kept for the retention window only; the maintenance sweep removes old rows.
func (db *DB) LogMessage(messageID, chat, sender, body string) error {
	query := `
		INSERT INTO messages (message_id, chat, sender, body)
		VALUES (?, ?, ?, ?)
	`
	if _, err := db.conn.Exec(query, messageID, chat, sender, body); err != nil {
		return fmt.Errorf("failed to log message: %w", err)
	}
	return nil
}

// CountMessages returns the total number of rows in the message log
func (db *DB) CountMessages() (int64, error) {
	var count int64
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM messages").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// CleanupOldMessages deletes message-log rows older than the retention
// period and returns the number of deleted rows.
func (db *DB) CleanupOldMessages(retentionDays int) (int64, error) {
	query := `
		DELETE FROM messages
		WHERE timestamp < datetime('now', '-' || ? || ' days')
	`
	result, err := db.conn.Exec(query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old messages: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}
