package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/middleware"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/request"
	"github.com/ndewijer/TradeTrack-Backend/internal/api/response"
	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
	"github.com/ndewijer/TradeTrack-Backend/internal/validation"
)

// TradeHandler handles HTTP requests for trade endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the ledgerService.
type TradeHandler struct {
	ledgerService *service.LedgerService
}

// NewTradeHandler creates a new TradeHandler with the provided service dependency.
func NewTradeHandler(ledgerService *service.LedgerService) *TradeHandler {
	return &TradeHandler{
		ledgerService: ledgerService,
	}
}

// Trades handles GET requests to list the ledger's trades, newest insertion first.
//
// Endpoint: GET /api/trades
// Query Parameters: account, market (Forex|Futures), side (Long|Short), from, to (YYYY-MM-DD)
// Response: 200 OK with array of Trade
// Error: 400 Bad Request if a filter parameter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *TradeHandler) Trades(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTradeFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	trades, err := h.ledgerService.ListTrades(r.Context(), middleware.UserFrom(r.Context()), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrades.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// CreateTrade handles POST requests to log a trade by hand.
// A missing pnl is computed from the prices; a missing size is 1.
//
// Endpoint: POST /api/trades
// Request Body: CreateTradeRequest
// Response: 201 Created with Trade
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the ledger cannot be saved
func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.ledgerService.CreateTrade(r.Context(), middleware.UserFrom(r.Context()), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveLedger.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, trade)
}

// DeleteTrade handles DELETE requests to remove a trade.
//
// Endpoint: DELETE /api/trades/{id}
// Response: 204 No Content
// Error: 404 Not Found if the trade does not exist
// Error: 500 Internal Server Error if the ledger cannot be saved
func (h *TradeHandler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidID.Error(), "trade ID is required")
		return
	}

	if err := h.ledgerService.DeleteTrade(r.Context(), middleware.UserFrom(r.Context()), id); err != nil {
		respondServiceError(w, apperrors.ErrFailedToSaveLedger, err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
