package handlers

import (
	"net/http"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/middleware"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/response"
	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
)

// InsightHandler serves AI performance reviews.
type InsightHandler struct {
	insightService *service.InsightService
}

// NewInsightHandler creates a new InsightHandler with the provided service dependency.
func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// InsightResponse carries the review text.
type InsightResponse struct {
	Insight string `json:"insight"`
}

// Insights handles POST requests for a review of the filtered trades.
//
// Endpoint: POST /api/insights
// Query Parameters: account, market, side, from, to
// Response: 200 OK with InsightResponse
// Error: 409 Conflict if a review is already running for the user
// Error: 429 Too Many Requests if the model service is rate limited
// Error: 502 Bad Gateway for any other model service failure
func (h *InsightHandler) Insights(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTradeFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	text, err := h.insightService.Analyze(r.Context(), middleware.UserFrom(r.Context()), filter)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveTrades, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, InsightResponse{Insight: text})
}
