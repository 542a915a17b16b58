package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/middleware"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/request"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/response"
	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
	"github.com/ndewijer/TradeTrack-Backend/internal/validation"
)

// DirectionHandler handles the daily bias history.
type DirectionHandler struct {
	directionService *service.DirectionService
}

// NewDirectionHandler creates a new DirectionHandler with the provided service dependency.
func NewDirectionHandler(directionService *service.DirectionService) *DirectionHandler {
	return &DirectionHandler{
		directionService: directionService,
	}
}

// Directions handles GET requests for the bias history, newest first.
//
// Endpoint: GET /api/directions
// Response: 200 OK with array of DailyDirection
// Error: 500 Internal Server Error if retrieval fails
func (h *DirectionHandler) Directions(w http.ResponseWriter, r *http.Request) {
	history, err := h.directionService.List(r.Context(), middleware.UserFrom(r.Context()))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDirections.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// AnalyzeDirection handles POST requests to record a bias call from a chart.
//
// Endpoint: POST /api/directions
// Request Body: AnalyzeDirectionRequest (image, mimeType, instrument, date)
// Response: 201 Created with DailyDirection
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if an analysis is already running for the user
// Error: 429 Too Many Requests if the model service is rate limited
// Error: 502 Bad Gateway for any other model service failure
func (h *DirectionHandler) AnalyzeDirection(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AnalyzeDirectionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAnalyzeDirection(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	record, err := h.directionService.Analyze(r.Context(), middleware.UserFrom(r.Context()), req)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToSaveLedger, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, record)
}

// UpdateOutcome handles PUT requests to grade a bias call.
//
// Endpoint: PUT /api/directions/{uuid}/outcome
// Request Body: UpdateOutcomeRequest (outcome: Pending|Correct|Incorrect)
// Response: 200 OK with DailyDirection
// Error: 400 Bad Request if the ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if the record does not exist
func (h *DirectionHandler) UpdateOutcome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateOutcomeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateOutcome(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	record, err := h.directionService.UpdateOutcome(r.Context(), middleware.UserFrom(r.Context()), id, model.DirectionOutcome(req.Outcome))
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToSaveLedger, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, record)
}

// DeleteDirection handles DELETE requests to remove a bias record.
//
// Endpoint: DELETE /api/directions/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the record does not exist
func (h *DirectionHandler) DeleteDirection(w http.ResponseWriter, r *http.Request) {
	if err := h.directionService.Delete(r.Context(), middleware.UserFrom(r.Context()), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, apperrors.ErrFailedToSaveLedger, err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
