package metrics

import (
	"database/sql"
	"fmt"
	"time"
)

// MetricType represents the type of metric being recorded
type MetricType string

const (
	MetricTypeCommand  MetricType = "command"
	MetricTypeDispatch MetricType = "dispatch"
	MetricTypeError    MetricType = "error"
)

// Stats holds aggregated metrics for the status endpoint
type Stats struct {
	Uptime        time.Duration    `json:"-"`
	CommandCounts map[string]int64 `json:"command_counts"`
	ErrorCounts   map[string]int64 `json:"error_counts"`
	Dispatches24h int64            `json:"dispatches_24h"`
	Errors24h     int64            `json:"errors_24h"`
}

// Collector records dispatch and command metrics in sqlite
type Collector struct {
	conn      *sql.DB
	startedAt time.Time
}

// NewCollector creates a metrics collector over the bot database
func NewCollector(conn *sql.DB) *Collector {
	return &Collector{conn: conn, startedAt: time.Now()}
}

// RecordDispatch records one handled incoming message
func (c *Collector) RecordDispatch() error {
	return c.record(MetricTypeDispatch, "message")
}

// RecordCommandUsage records that a command was executed
func (c *Collector) RecordCommandUsage(commandName string) error {
	return c.record(MetricTypeCommand, commandName)
}

// RecordError records that a dispatch failed with the given error type
func (c *Collector) RecordError(errorType string) error {
	return c.record(MetricTypeError, errorType)
}

func (c *Collector) record(metricType MetricType, name string) error {
	_, err := c.conn.Exec(
		"INSERT INTO metrics (metric_type, metric_name, value) VALUES (?, ?, ?)",
		metricType, name, 1.0,
	)
	if err != nil {
		return fmt.Errorf("failed to record %s metric: %w", metricType, err)
	}
	return nil
}

// GetStats returns aggregated metrics since startup plus 24-hour windows
func (c *Collector) GetStats() (*Stats, error) {
	stats := &Stats{
		Uptime:        time.Since(c.startedAt),
		CommandCounts: make(map[string]int64),
		ErrorCounts:   make(map[string]int64),
	}

	if err := c.countsByName(MetricTypeCommand, stats.CommandCounts); err != nil {
		return nil, err
	}
	if err := c.countsByName(MetricTypeError, stats.ErrorCounts); err != nil {
		return nil, err
	}

	// Stored timestamps default to CURRENT_TIMESTAMP, which is UTC
	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	var err error
	if stats.Dispatches24h, err = c.countSince(MetricTypeDispatch, cutoff); err != nil {
		return nil, err
	}
	if stats.Errors24h, err = c.countSince(MetricTypeError, cutoff); err != nil {
		return nil, err
	}

	return stats, nil
}

func (c *Collector) countsByName(metricType MetricType, into map[string]int64) error {
	rows, err := c.conn.Query(
		"SELECT metric_name, COUNT(*) FROM metrics WHERE metric_type = ? GROUP BY metric_name",
		metricType,
	)
	if err != nil {
		return fmt.Errorf("failed to query %s counts: %w", metricType, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return fmt.Errorf("failed to scan %s count: %w", metricType, err)
		}
		into[name] = count
	}
	return rows.Err()
}

func (c *Collector) countSince(metricType MetricType, cutoff time.Time) (int64, error) {
	var count int64
	err := c.conn.QueryRow(
		"SELECT COUNT(*) FROM metrics WHERE metric_type = ? AND timestamp > ?",
		metricType, cutoff,
	).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to query %s window count: %w", metricType, err)
	}
	return count, nil
}

// CleanupOld deletes metrics older than the given duration
func (c *Collector) CleanupOld(olderThan time.Duration) (int64, error) {
	result, err := c.conn.Exec(
		"DELETE FROM metrics WHERE timestamp < ?",
		time.Now().UTC().Add(-olderThan),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old metrics: %w", err)
	}
	return result.RowsAffected()
}
