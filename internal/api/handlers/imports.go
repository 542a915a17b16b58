package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/middleware"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/request"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/response"
	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
	"github.com/ndewijer/TradeTrack-Backend/internal/validation"
)

// ImportHandler handles report and screenshot imports. Both produce a
// preview that must be confirmed before anything reaches the ledger.
type ImportHandler struct {
	importService  *service.ImportService
	maxUploadBytes int64
}

// NewImportHandler creates a new ImportHandler. maxUploadBytes caps request bodies.
func NewImportHandler(importService *service.ImportService, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
	}
}

// ImportResponse is the body returned for a new preview.
type ImportResponse struct {
	PreviewID string                  `json:"previewId"`
	Source    string                  `json:"source"`
	Account   string                  `json:"account"`
	Trades    []model.Trade           `json:"trades"`
	Items     []model.ImageItemResult `json:"items,omitempty"`
	ExpiresAt string                  `json:"expiresAt"`
}

func newImportResponse(p *model.ImportPreview) ImportResponse {
	return ImportResponse{
		PreviewID: p.ID,
		Source:    p.Source,
		Account:   p.AccountName,
		Trades:    p.Trades,
		Items:     p.Items,
		ExpiresAt: p.ExpiresAt.Format(time.RFC3339),
	}
}

func defaultAccount(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return model.DefaultAccounts()[0].Name
}

// ImportReport handles POST requests to decode an MT5 HTML report.
//
// Endpoint: POST /api/imports/report
// Query Parameters: account (defaults to the first seed account)
// Request Body: multipart/form-data with a "file" part (.html or .htm)
// Response: 201 Created with ImportResponse
// Error: 400 Bad Request if the upload is missing or too large
// Error: 415 Unsupported Media Type if the file is not an HTML report
// Error: 422 Unprocessable Entity if no closed trades were found
// Error: 500 Internal Server Error if the preview cannot be stored
func (h *ImportHandler) ImportReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(w, http.StatusRequestEntityTooLarge, "report too large", err.Error())
			return
		}
		response.RespondError(w, http.StatusBadRequest, "a report file is required", err.Error())
		return
	}
	defer file.Close()

	account := defaultAccount(r.URL.Query().Get("account"))

	preview, err := h.importService.PreviewReport(r.Context(), middleware.UserFrom(r.Context()), header.Filename, file, account)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToImport, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, newImportResponse(preview))
}

// ImportImages handles POST requests to extract trades from screenshots.
// Items are processed in order; a failed item is reported and skipped.
//
// Endpoint: POST /api/imports/images
// Request Body: ImageImportRequest (account, images[])
// Response: 201 Created with ImportResponse
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if an image batch is already running for the user
// Error: 500 Internal Server Error if the preview cannot be stored
func (h *ImportHandler) ImportImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	req, err := parseJSON[request.ImageImportRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	req.Account = defaultAccount(req.Account)

	if err := validation.ValidateImageImport(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	preview, err := h.importService.ImportImages(r.Context(), middleware.UserFrom(r.Context()), req)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToImport, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, newImportResponse(preview))
}

// GetPreview handles GET requests for a pending preview.
//
// Endpoint: GET /api/imports/{id}
// Response: 200 OK with ImportResponse
// Error: 404 Not Found if the preview does not exist or expired
func (h *ImportHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.importService.GetPreview(r.Context(), middleware.UserFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToImport, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, newImportResponse(preview))
}

// ConfirmImport handles POST requests to commit a preview to the ledger.
// The optional body moves every trade to another account first.
//
// Endpoint: POST /api/imports/{id}/confirm
// Request Body: ConfirmImportRequest (optional)
// Response: 200 OK with the committed trades
// Error: 404 Not Found if the preview does not exist or expired
// Error: 500 Internal Server Error if the ledger cannot be saved
func (h *ImportHandler) ConfirmImport(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmImportRequest
	if r.ContentLength != 0 {
		parsed, err := parseJSON[request.ConfirmImportRequest](r)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		req = parsed
	}

	trades, err := h.importService.ConfirmPreview(r.Context(), middleware.UserFrom(r.Context()), chi.URLParam(r, "id"), strings.TrimSpace(req.Account))
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToImport, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// DiscardImport handles DELETE requests to drop a preview.
//
// Endpoint: DELETE /api/imports/{id}
// Response: 204 No Content
// Error: 404 Not Found if the preview does not exist or expired
func (h *ImportHandler) DiscardImport(w http.ResponseWriter, r *http.Request) {
	if err := h.importService.DiscardPreview(r.Context(), middleware.UserFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, apperrors.ErrFailedToImport, err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
