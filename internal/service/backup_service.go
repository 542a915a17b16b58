package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fernet/fernet-go"
	"go.uber.org/zap"

	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/logging"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

// BackupService exports and restores a user's whole ledger, and writes
// snapshots to disk. Snapshots are sealed with fernet when a key is set.
type BackupService struct {
	ledger *LedgerService
	dir    string
	key    *fernet.Key
	now    func() time.Time
}

// NewBackupService creates a new BackupService. encodedKey may be empty to
// write plain snapshots.
func NewBackupService(ledger *LedgerService, dir, encodedKey string) (*BackupService, error) {
	s := &BackupService{
		ledger: ledger,
		dir:    dir,
		now:    time.Now,
	}
	if encodedKey != "" {
		key, err := fernet.DecodeKey(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("invalid backup encryption key: %w", err)
		}
		s.key = key
	}
	return s, nil
}

// SetClock replaces the time source.
func (s *BackupService) SetClock(now func() time.Time) {
	s.now = now
}

// Export returns the user's ledger as a backup document.
func (s *BackupService) Export(ctx context.Context, user string) (*model.Backup, error) {
	ledger, err := s.ledger.Load(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToExportBackup, err)
	}
	return newBackup(ledger, s.now())
}

func newBackup(ledger *model.Ledger, now time.Time) (*model.Backup, error) {
	trades, err := json.Marshal(ledger.Trades)
	if err != nil {
		return nil, err
	}
	accounts, err := json.Marshal(ledger.Accounts)
	if err != nil {
		return nil, err
	}
	directions, err := json.Marshal(ledger.Directions)
	if err != nil {
		return nil, err
	}
	return &model.Backup{
		Trades:           trades,
		Accounts:         accounts,
		DirectionHistory: directions,
		ExportDate:       now.UTC().Format(time.RFC3339),
	}, nil
}

// Restore replaces the user's ledger with a backup. data may be plain JSON
// or a fernet token sealed with the configured key. Trades and accounts are
// always replaced; the bias history only when the backup carries one.
func (s *BackupService) Restore(ctx context.Context, user string, data []byte) (*model.Ledger, error) {
	restored, err := s.decode(data)
	if err != nil {
		return nil, err
	}

	lock := s.ledger.userLock(user)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.ledger.Load(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRestoreBackup, err)
	}
	if restored.Directions == nil {
		restored.Directions = current.Directions
	}
	if err := s.ledger.Save(ctx, user, restored); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRestoreBackup, err)
	}

	logging.Info(ctx, "backup restored",
		zap.String("user", user),
		zap.Int("trades", len(restored.Trades)),
		zap.Int("accounts", len(restored.Accounts)))
	return restored, nil
}

func (s *BackupService) decode(data []byte) (*model.Ledger, error) {
	return OpenBackup(data, s.key)
}

// OpenBackup decodes and validates a backup document, first opening it with
// key when it is a sealed snapshot. key may be nil for plain backups. The
// returned ledger has nil Directions when the backup had no history.
func OpenBackup(data []byte, key *fernet.Key) (*model.Ledger, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		if key == nil {
			return nil, fmt.Errorf("%w: sealed backup but no encryption key configured", apperrors.ErrInvalidBackup)
		}
		opened := fernet.VerifyAndDecrypt(data, -1, []*fernet.Key{key})
		if opened == nil {
			return nil, fmt.Errorf("%w: cannot open sealed backup", apperrors.ErrInvalidBackup)
		}
		data = opened
	}

	var b model.Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidBackup, err)
	}
	if isAbsent(b.Trades) || isAbsent(b.Accounts) {
		return nil, apperrors.ErrInvalidBackup
	}

	ledger := &model.Ledger{}
	if err := json.Unmarshal(b.Trades, &ledger.Trades); err != nil {
		return nil, fmt.Errorf("%w: trades: %w", apperrors.ErrInvalidBackup, err)
	}
	if err := json.Unmarshal(b.Accounts, &ledger.Accounts); err != nil {
		return nil, fmt.Errorf("%w: accounts: %w", apperrors.ErrInvalidBackup, err)
	}
	if !isAbsent(b.DirectionHistory) {
		ledger.Directions = []model.DailyDirection{}
		if err := json.Unmarshal(b.DirectionHistory, &ledger.Directions); err != nil {
			return nil, fmt.Errorf("%w: directionHistory: %w", apperrors.ErrInvalidBackup, err)
		}
	}
	if ledger.Trades == nil {
		ledger.Trades = []model.Trade{}
	}
	if ledger.Accounts == nil {
		ledger.Accounts = []model.Account{}
	}
	return ledger, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// Snapshot writes the user's backup to the backup directory and returns the
// file path.
func (s *BackupService) Snapshot(ctx context.Context, user string) (string, error) {
	b, err := s.Export(ctx, user)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}
	if s.key != nil {
		data, err = fernet.EncryptAndSign(data, s.key)
		if err != nil {
			return "", fmt.Errorf("failed to seal backup: %w", err)
		}
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	name := fmt.Sprintf("tradetrack_backup_%s_%s.json", user, s.now().UTC().Format(time.DateOnly))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return path, nil
}

// SnapshotAll writes a snapshot for every user with persisted state. A
// failing user is logged and skipped.
func (s *BackupService) SnapshotAll(ctx context.Context) (int, error) {
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return 0, err
	}
	written := 0
	for _, user := range users {
		path, err := s.Snapshot(ctx, user)
		if err != nil {
			logging.Error(ctx, "backup snapshot failed", err, zap.String("user", user))
			continue
		}
		written++
		logging.Info(ctx, "backup snapshot written", zap.String("user", user), zap.String("path", path))
	}
	return written, nil
}
