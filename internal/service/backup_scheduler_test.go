package service_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ndewijer/TradeTrack-Backend/internal/service"
	"github.com/ndewijer/TradeTrack-Backend/internal/testutil"
)

// TestNewBackupScheduler tests schedule parsing and the scheduler lifecycle.
//
// WHY: A typo in BACKUP_SCHEDULE must stop the server at startup rather than
// silently never backing up, and shutdown must not hang on an idle schedule.
func TestNewBackupScheduler(t *testing.T) {
	t.Run("rejects an invalid schedule", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBackupService(t, db, "")

		// Execute
		scheduler, err := service.NewBackupScheduler(svc, "not a spec")

		// Assert
		if err == nil {
			t.Fatal("Expected error for invalid schedule, got nil")
		}
		if scheduler != nil {
			t.Errorf("Expected nil scheduler, got %+v", scheduler)
		}
	})

	t.Run("starts and stops promptly", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBackupService(t, db, "")
		scheduler, err := service.NewBackupScheduler(svc, "@daily")
		if err != nil {
			t.Fatalf("NewBackupScheduler() returned unexpected error: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Execute
		scheduler.Start()
		start := time.Now()
		scheduler.Stop(ctx)

		// Assert
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("Expected Stop to return promptly, took %v", elapsed)
		}
		if ctx.Err() != nil {
			t.Error("Expected Stop to return before the context deadline")
		}
	})

	t.Run("runs snapshots on schedule", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		ledger := testutil.NewTestLedgerService(t, db)
		testutil.SeedTrades(t, ledger, testutil.TestUser, 25)
		dir := t.TempDir()
		svc, err := service.NewBackupService(ledger, dir, "")
		if err != nil {
			t.Fatalf("NewBackupService() returned unexpected error: %v", err)
		}
		scheduler, err := service.NewBackupScheduler(svc, "@every 1s")
		if err != nil {
			t.Fatalf("NewBackupScheduler() returned unexpected error: %v", err)
		}

		// Execute
		scheduler.Start()
		deadline := time.Now().Add(5 * time.Second)
		var entries []os.DirEntry
		for time.Now().Before(deadline) {
			entries, _ = os.ReadDir(dir)
			if len(entries) > 0 {
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		scheduler.Stop(stopCtx)

		// Assert
		if len(entries) == 0 {
			t.Fatal("Expected a snapshot file within 5s, got none")
		}
	})
}
