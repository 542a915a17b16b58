package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/request"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/response"
	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
	"github.com/ndewijer/TradeTrack-Backend/internal/validation"
)

// parseJSON decodes the request body into T, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON: %w", err)
	}
	return req, nil
}

// parseTradeFilter reads the shared account/market/side/from/to query parameters.
func parseTradeFilter(r *http.Request) (model.TradeFilter, error) {
	q := r.URL.Query()
	return request.ParseTradeFilter(q.Get("account"), q.Get("market"), q.Get("side"), q.Get("from"), q.Get("to"))
}

// statusFor maps a service error onto an HTTP status. ok is false for errors
// with no specific mapping.
func statusFor(err error) (status int, message string, ok bool) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, "validation failed", true
	case errors.Is(err, apperrors.ErrTradeNotFound):
		return http.StatusNotFound, apperrors.ErrTradeNotFound.Error(), true
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), true
	case errors.Is(err, apperrors.ErrDirectionNotFound):
		return http.StatusNotFound, apperrors.ErrDirectionNotFound.Error(), true
	case errors.Is(err, apperrors.ErrPreviewNotFound):
		return http.StatusNotFound, apperrors.ErrPreviewNotFound.Error(), true
	case errors.Is(err, apperrors.ErrDuplicateAccount):
		return http.StatusConflict, apperrors.ErrDuplicateAccount.Error(), true
	case errors.Is(err, apperrors.ErrOperationInFlight):
		return http.StatusConflict, apperrors.ErrOperationInFlight.Error(), true
	case errors.Is(err, apperrors.ErrUnsupportedReport):
		return http.StatusUnsupportedMediaType, apperrors.ErrUnsupportedReport.Error(), true
	case errors.Is(err, apperrors.ErrNoClosedTrades):
		return http.StatusUnprocessableEntity, apperrors.ErrNoClosedTrades.Error(), true
	case errors.Is(err, apperrors.ErrInvalidImage):
		return http.StatusBadRequest, apperrors.ErrInvalidImage.Error(), true
	case errors.Is(err, apperrors.ErrInvalidBackup):
		return http.StatusBadRequest, apperrors.ErrInvalidBackup.Error(), true
	case errors.Is(err, apperrors.ErrAIQuotaExceeded):
		return http.StatusTooManyRequests, apperrors.ErrAIQuotaExceeded.Error(), true
	case errors.Is(err, apperrors.ErrAIUnavailable), errors.Is(err, apperrors.ErrAIMalformedResponse):
		return http.StatusBadGateway, apperrors.ErrAIUnavailable.Error(), true
	}
	return 0, "", false
}

// respondServiceError writes the mapped status for err, or 500 with fallback.
func respondServiceError(w http.ResponseWriter, fallback error, err error) {
	if status, message, ok := statusFor(err); ok {
		response.RespondError(w, status, message, err.Error())
		return
	}
	response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
}
