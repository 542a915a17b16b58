// Package response writes the JSON bodies every handler returns.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ndewijer/TradeTrack-Backend/internal/logging"
)

// ErrorResponse is the body of every non-2xx answer. Details carries the
// underlying error text or a per-field map and may be omitted.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON writes data as JSON with status. A nil data writes only the
// status, as for 204 No Content.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.L().Warn("failed to encode JSON response", zap.Int("status", status), zap.Error(err))
	}
}

// RespondAttachment writes data as a JSON download named filename.
func RespondAttachment(w http.ResponseWriter, filename string, data any) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	RespondJSON(w, http.StatusOK, data)
}

// RespondError writes an ErrorResponse.
//
// Example:
//
//	response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateAccount.Error(), err.Error())
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
