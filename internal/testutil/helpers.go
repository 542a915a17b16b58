package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/TradeTrack-Backend/internal/ai"
	"github.com/ndewijer/TradeTrack-Backend/internal/repository"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
)

// TestUser is the user scope used when a test does not care.
const TestUser = "tester"

// PreviewTTL is the preview lifetime used by test import services.
const PreviewTTL = 30 * time.Minute

func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	return service.NewLedgerService(repository.NewDocumentRepository(db))
}

// NewTestImportService creates an ImportService backed by db. Pass nil for
// aiClient when the test only imports reports.
func NewTestImportService(t *testing.T, db *sql.DB, aiClient ai.Client) *service.ImportService {
	t.Helper()

	if aiClient == nil {
		aiClient = ai.NewNoopClient()
	}
	return service.NewImportService(
		NewTestLedgerService(t, db),
		repository.NewPreviewRepository(db),
		aiClient,
		service.NewInFlight(),
		PreviewTTL,
	)
}

func NewTestDirectionService(t *testing.T, db *sql.DB, aiClient ai.Client) *service.DirectionService {
	t.Helper()

	return service.NewDirectionService(NewTestLedgerService(t, db), aiClient, service.NewInFlight())
}

func NewTestInsightService(t *testing.T, db *sql.DB, aiClient ai.Client) *service.InsightService {
	t.Helper()

	return service.NewInsightService(NewTestLedgerService(t, db), aiClient, service.NewInFlight())
}

// NewTestBackupService creates a BackupService writing to a temporary
// directory. key may be empty.
func NewTestBackupService(t *testing.T, db *sql.DB, key string) *service.BackupService {
	t.Helper()

	svc, err := service.NewBackupService(NewTestLedgerService(t, db), t.TempDir(), key)
	if err != nil {
		t.Fatalf("Failed to create backup service: %v", err)
	}
	return svc
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, map[string]bool{"report_import": true})
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeAccountName generates a unique account name for testing.
//
// Example usage:
//
//	name := testutil.MakeAccountName("Prop")
//	// Returns: "Prop ABC123"
func MakeAccountName(base string) string {
	if base == "" {
		base = "Account"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// Common test constants

var (
	// CommonForexPairs contains instruments the market heuristic classifies as Forex
	CommonForexPairs = []string{"EURUSD", "GBPUSD", "USDJPY", "EUR/USD"}

	// CommonFutures contains instruments the market heuristic classifies as Futures
	CommonFutures = []string{"ES", "NQ", "CL", "GC", "MNQ"}
)

// FixedTime returns a stable instant for clock-dependent tests.
func FixedTime() time.Time {
	return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}
