package handlers

import (
	"net/http"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/middleware"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/response"
	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
)

// DashboardHandler serves the derived performance views.
type DashboardHandler struct {
	ledgerService *service.LedgerService
}

// NewDashboardHandler creates a new DashboardHandler with the provided service dependency.
func NewDashboardHandler(ledgerService *service.LedgerService) *DashboardHandler {
	return &DashboardHandler{
		ledgerService: ledgerService,
	}
}

// Dashboard handles GET requests for metrics, the equity curve and the
// breakdowns of the filtered trades. The account breakdown always covers
// the whole ledger.
//
// Endpoint: GET /api/dashboard
// Query Parameters: account, market, side, from, to
// Response: 200 OK with Dashboard
// Error: 400 Bad Request if a filter parameter is invalid
// Error: 500 Internal Server Error if the ledger cannot be loaded
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTradeFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	dashboard, err := h.ledgerService.Dashboard(r.Context(), middleware.UserFrom(r.Context()), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildDashboard.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}
