package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ndewijer/TradeTrack-Backend/internal/database"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
	"github.com/ndewijer/TradeTrack-Backend/internal/repository"
	"github.com/ndewijer/TradeTrack-Backend/internal/version"
)

// SystemService reports instance health and version.
type SystemService struct {
	db       *sql.DB
	docs     *repository.DocumentRepository
	features map[string]bool
}

// NewSystemService creates a new SystemService. features lists the optional
// capabilities this instance was started with.
func NewSystemService(db *sql.DB, features map[string]bool) *SystemService {
	if features == nil {
		features = map[string]bool{}
	}
	return &SystemService{
		db:       db,
		docs:     repository.NewDocumentRepository(db),
		features: features,
	}
}

// CheckHealth pings the database and counts stored ledgers. The returned
// status is always usable; err is set when the instance is unhealthy.
func (s *SystemService) CheckHealth(ctx context.Context) (*model.HealthStatus, error) {
	if err := database.HealthCheck(s.db); err != nil {
		return &model.HealthStatus{Status: "unhealthy", Database: "disconnected", Error: err.Error()}, err
	}

	users, err := s.docs.Usernames(ctx)
	if err != nil {
		return &model.HealthStatus{Status: "unhealthy", Database: "connected", Error: err.Error()}, err
	}
	n := len(users)
	return &model.HealthStatus{Status: "healthy", Database: "connected", Ledgers: &n}, nil
}

// CheckVersion reports the application version, the applied schema version
// and whether migrations are pending.
func (s *SystemService) CheckVersion(ctx context.Context) (*model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(ctx, s.db)
	if err != nil {
		return nil, err
	}
	pending, err := database.PendingMigrations(ctx, s.db)
	if err != nil {
		return nil, err
	}

	info := &model.VersionInfo{
		AppVersion:      version.Version,
		DbVersion:       strconv.FormatInt(dbVersion, 10),
		Features:        s.features,
		MigrationNeeded: pending,
	}
	if pending {
		msg := fmt.Sprintf("database schema %d has pending migrations, restart the server to apply them", dbVersion)
		info.MigrationMessage = &msg
	}
	return info, nil
}
