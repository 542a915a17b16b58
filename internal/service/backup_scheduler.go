package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ndewijer/TradeTrack-Backend/internal/logging"
)

// BackupScheduler runs SnapshotAll on a cron schedule.
type BackupScheduler struct {
	cron    *cron.Cron
	backups *BackupService
	timeout time.Duration
}

// NewBackupScheduler parses spec (standard five-field cron, or descriptors
// such as "@daily") and prepares the job. Call Start to begin running it.
func NewBackupScheduler(backups *BackupService, spec string) (*BackupScheduler, error) {
	s := &BackupScheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		backups: backups,
		timeout: 5 * time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *BackupScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	ctx, span := logging.StartSpan(ctx, "backup.scheduled")
	defer span.End()

	n, err := s.backups.SnapshotAll(ctx)
	if err != nil {
		logging.Error(ctx, "scheduled backup failed", err)
		return
	}
	logging.Info(ctx, "scheduled backup finished", zap.Int("snapshots", n))
}

// Start begins running the schedule in the background.
func (s *BackupScheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running snapshot or ctx.
func (s *BackupScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
