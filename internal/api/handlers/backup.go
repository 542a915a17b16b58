package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/middleware"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/response"
	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
)

// BackupHandler exports and restores whole ledgers.
type BackupHandler struct {
	backupService  *service.BackupService
	maxUploadBytes int64
}

// NewBackupHandler creates a new BackupHandler. maxUploadBytes caps restore bodies.
func NewBackupHandler(backupService *service.BackupService, maxUploadBytes int64) *BackupHandler {
	return &BackupHandler{
		backupService:  backupService,
		maxUploadBytes: maxUploadBytes,
	}
}

// RestoreResponse summarizes a restore.
type RestoreResponse struct {
	Trades     int `json:"trades"`
	Accounts   int `json:"accounts"`
	Directions int `json:"directions"`
}

// Export handles GET requests to download the user's ledger.
//
// Endpoint: GET /api/backup
// Response: 200 OK with Backup as an attachment
// Error: 500 Internal Server Error if the ledger cannot be loaded
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	backup, err := h.backupService.Export(r.Context(), user)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExportBackup.Error(), err.Error())
		return
	}

	filename := fmt.Sprintf("tradetrack_backup_%s_%s.json", user, time.Now().UTC().Format(time.DateOnly))
	response.RespondAttachment(w, filename, backup)
}

// Restore handles POST requests to replace the user's ledger with a backup.
// The body is the backup JSON or a fernet token sealed with the server key.
//
// Endpoint: POST /api/backup/restore
// Request Body: Backup JSON or sealed snapshot
// Response: 200 OK with RestoreResponse
// Error: 400 Bad Request if the body is not a valid backup
// Error: 500 Internal Server Error if the ledger cannot be saved
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(w, http.StatusRequestEntityTooLarge, "backup too large", err.Error())
			return
		}
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ledger, err := h.backupService.Restore(r.Context(), middleware.UserFrom(r.Context()), data)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRestoreBackup, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, RestoreResponse{
		Trades:     len(ledger.Trades),
		Accounts:   len(ledger.Accounts),
		Directions: len(ledger.Directions),
	})
}
