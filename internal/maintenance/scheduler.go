// Package maintenance runs the periodic housekeeping jobs: session-state
// sweeps, message-log retention, metrics retention and database vacuum.
package maintenance

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yourusername/wabot/internal/database"
	"github.com/yourusername/wabot/internal/errors"
	"github.com/yourusername/wabot/internal/metrics"
	"github.com/yourusername/wabot/internal/output"
	"github.com/yourusername/wabot/internal/store"
)

// metricsRetention bounds the metrics table; aggregates older than this
// have no consumer
const metricsRetention = 30 * 24 * time.Hour

// Scheduler owns the cron jobs for background housekeeping. Job failures
// go to the error log file; nobody is watching the terminal at 4am.
type Scheduler struct {
	cron      *cron.Cron
	logger    output.Logger
	errs      *errors.ErrorHandler
	db        *database.DB
	sessions  store.SessionStore
	collector *metrics.Collector

	retentionDays  int
	vacuumInterval time.Duration
}

// NewScheduler creates the housekeeping scheduler
func NewScheduler(out *output.Output, db *database.DB, sessions store.SessionStore, collector *metrics.Collector, retentionDays int, vacuumInterval time.Duration) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		logger:         out.Logger,
		errs:           errors.NewErrorHandler(out),
		db:             db,
		sessions:       sessions,
		collector:      collector,
		retentionDays:  retentionDays,
		vacuumInterval: vacuumInterval,
	}
}

// Start registers the jobs and begins running them
func (s *Scheduler) Start() error {
	// Expired sessions are also rejected on read; the sweep only bounds
	// the map's memory
	if _, err := s.cron.AddFunc("@every 1m", s.sweepSessions); err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	if _, err := s.cron.AddFunc("@daily", s.cleanupRetention); err != nil {
		return fmt.Errorf("failed to schedule retention cleanup: %w", err)
	}

	if s.vacuumInterval > 0 {
		spec := fmt.Sprintf("@every %s", s.vacuumInterval)
		if _, err := s.cron.AddFunc(spec, s.vacuum); err != nil {
			return fmt.Errorf("failed to schedule vacuum: %w", err)
		}
	}

	s.cron.Start()
	s.logger.Info("maintenance scheduler started")
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("maintenance scheduler stopped")
}

func (s *Scheduler) sweepSessions() {
	if removed := s.sessions.Sweep(); removed > 0 {
		s.logger.Info("swept %d expired menu sessions", removed)
	}
}

func (s *Scheduler) cleanupRetention() {
	deleted, err := s.db.CleanupOldMessages(s.retentionDays)
	if err != nil {
		s.errs.LogError(err, "message retention cleanup")
	} else if deleted > 0 {
		s.logger.Info("removed %d message-log rows past retention", deleted)
	}

	if s.collector != nil {
		deleted, err := s.collector.CleanupOld(metricsRetention)
		if err != nil {
			s.errs.LogError(err, "metrics retention cleanup")
		} else if deleted > 0 {
			s.logger.Info("removed %d metric rows past retention", deleted)
		}
	}
}

func (s *Scheduler) vacuum() {
	if err := s.db.Vacuum(); err != nil {
		s.errs.LogError(err, "database vacuum")
		return
	}
	s.logger.Info("database vacuum completed")
}
