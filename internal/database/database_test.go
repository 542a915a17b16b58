package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenAndMigrate(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()

	pending, err := PendingMigrations(ctx, db)
	if err != nil {
		t.Fatalf("PendingMigrations() error: %v", err)
	}
	if !pending {
		t.Error("Expected pending migrations on a fresh database")
	}

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	// Idempotent
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("second Migrate() error: %v", err)
	}

	version, err := SchemaVersion(ctx, db)
	if err != nil {
		t.Fatalf("SchemaVersion() error: %v", err)
	}
	if version != 2 {
		t.Errorf("Expected schema version 2, got %d", version)
	}

	for _, table := range []string{"ledger_document", "import_preview"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s to exist: %v", table, err)
		}
	}

	if err := HealthCheck(db); err != nil {
		t.Errorf("HealthCheck() error: %v", err)
	}
}
