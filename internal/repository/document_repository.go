package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Ledger document kinds.
const (
	KindTrades     = "trades"
	KindAccounts   = "accounts"
	KindDirections = "directions"
)

// DocumentRepository stores each user's ledger as independent JSON documents
// in the ledger_document table, keyed by username and kind.
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a new DocumentRepository with the provided database connection.
func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// GetDocument returns the raw payload of one document. The boolean is false
// when the user has never saved a document of that kind.
func (r *DocumentRepository) GetDocument(ctx context.Context, username, kind string) ([]byte, bool, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM ledger_document WHERE username = ? AND kind = ?`,
		username, kind,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query ledger_document: %w", err)
	}
	return []byte(payload), true, nil
}

// PutDocuments replaces the given documents in one transaction. Absent kinds
// are left as they are.
func (r *DocumentRepository) PutDocuments(ctx context.Context, username string, docs map[string][]byte) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := FormatTime(time.Now())
	for kind, payload := range docs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ledger_document (username, kind, payload, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (username, kind) DO UPDATE SET
				payload = excluded.payload,
				updated_at = excluded.updated_at
		`, username, kind, string(payload), now)
		if err != nil {
			return fmt.Errorf("failed to save %s document: %w", kind, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Usernames returns every user that has saved at least one document.
func (r *DocumentRepository) Usernames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT username FROM ledger_document ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger_document: %w", err)
	}
	defer rows.Close()

	users := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan ledger_document results: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger_document table: %w", err)
	}
	return users, nil
}
