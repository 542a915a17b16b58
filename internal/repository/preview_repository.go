package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
)

// PreviewRepository holds decoded imports that have not been confirmed yet.
type PreviewRepository struct {
	db *sql.DB
}

// NewPreviewRepository creates a new PreviewRepository with the provided database connection.
func NewPreviewRepository(db *sql.DB) *PreviewRepository {
	return &PreviewRepository{db: db}
}

type previewPayload struct {
	Trades []model.Trade           `json:"trades"`
	Items  []model.ImageItemResult `json:"items,omitempty"`
}

// InsertPreview stores a preview for username.
func (r *PreviewRepository) InsertPreview(ctx context.Context, username string, p *model.ImportPreview) error {
	payload, err := json.Marshal(previewPayload{Trades: p.Trades, Items: p.Items})
	if err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO import_preview (id, username, source, account_name, payload, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		username,
		p.Source,
		p.AccountName,
		string(payload),
		FormatTime(p.CreatedAt),
		FormatTime(p.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert import_preview: %w", err)
	}
	return nil
}

// GetPreview returns an unexpired preview owned by username, or
// apperrors.ErrPreviewNotFound.
func (r *PreviewRepository) GetPreview(ctx context.Context, username, id string, now time.Time) (*model.ImportPreview, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, source, account_name, payload, created_at, expires_at
		FROM import_preview
		WHERE id = ? AND username = ?
	`, id, username)
	return scanPreview(row, now)
}

// TakePreview deletes a preview and returns what it held, in one statement.
// Of several concurrent callers exactly one gets the preview; the others,
// like callers of an expired preview, get apperrors.ErrPreviewNotFound.
func (r *PreviewRepository) TakePreview(ctx context.Context, username, id string, now time.Time) (*model.ImportPreview, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM import_preview
		WHERE id = ? AND username = ?
		RETURNING id, source, account_name, payload, created_at, expires_at
	`, id, username)
	return scanPreview(row, now)
}

func scanPreview(row *sql.Row, now time.Time) (*model.ImportPreview, error) {
	var (
		p                    model.ImportPreview
		payload              string
		createdAt, expiresAt string
	)
	err := row.Scan(&p.ID, &p.Source, &p.AccountName, &payload, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrPreviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query import_preview: %w", err)
	}

	if p.CreatedAt, err = ParseTime(createdAt); err != nil {
		return nil, err
	}
	if p.ExpiresAt, err = ParseTime(expiresAt); err != nil {
		return nil, err
	}
	if !now.Before(p.ExpiresAt) {
		return nil, apperrors.ErrPreviewNotFound
	}

	var decoded previewPayload
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode preview: %w", err)
	}
	p.Trades = decoded.Trades
	p.Items = decoded.Items
	return &p, nil
}

// DeletePreview removes a preview. It returns apperrors.ErrPreviewNotFound
// when nothing was deleted.
func (r *PreviewRepository) DeletePreview(ctx context.Context, username, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM import_preview WHERE id = ? AND username = ?`, id, username)
	if err != nil {
		return fmt.Errorf("failed to delete import_preview: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrPreviewNotFound
	}
	return nil
}

// PurgeExpired deletes every preview that expired before now and returns how many were removed.
func (r *PreviewRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM import_preview WHERE expires_at <= ?`, FormatTime(now))
	if err != nil {
		return 0, fmt.Errorf("failed to purge import_preview: %w", err)
	}
	return res.RowsAffected()
}
