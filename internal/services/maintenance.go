package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/logging"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Maintenance runs housekeeping on a cron schedule: system log retention
// and removal of dead sessions.
type Maintenance struct {
	cron      *cron.Cron
	db        *gorm.DB
	accounts  *AccountService
	retention time.Duration
	spec      string
	now       func() time.Time
}

func NewMaintenance(db *gorm.DB, accounts *AccountService, retention time.Duration, spec string) *Maintenance {
	return &Maintenance{
		cron:      cron.New(cron.WithLogger(cronLogger{})),
		db:        db,
		accounts:  accounts,
		retention: retention,
		spec:      spec,
		now:       time.Now,
	}
}

// Start registers the job and starts the scheduler.
func (m *Maintenance) Start(ctx context.Context) error {
	if _, err := m.cron.AddFunc(m.spec, func() { m.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	m.cron.Start()
	slog.Info("maintenance scheduled", "spec", m.spec)
	return nil
}

// Stop waits for a running job to finish.
func (m *Maintenance) Stop() {
	<-m.cron.Stop().Done()
}

func (m *Maintenance) RunOnce(ctx context.Context) {
	cutoff := m.now().UTC().Add(-m.retention)
	if n, err := logging.Cleanup(ctx, m.db, cutoff); err != nil {
		slog.Error("log cleanup failed", "error", err)
	} else if n > 0 {
		slog.Info("log cleanup completed", "deleted", n)
	}

	if n, err := m.accounts.PurgeSessions(ctx); err != nil {
		slog.Error("session purge failed", "error", err)
	} else if n > 0 {
		slog.Info("session purge completed", "deleted", n)
	}
}

// cronLogger sends cron's own messages to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
