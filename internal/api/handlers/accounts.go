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

// AccountHandler handles HTTP requests for account endpoints.
type AccountHandler struct {
	ledgerService *service.LedgerService
}

// NewAccountHandler creates a new AccountHandler with the provided service dependency.
func NewAccountHandler(ledgerService *service.LedgerService) *AccountHandler {
	return &AccountHandler{
		ledgerService: ledgerService,
	}
}

// Accounts handles GET requests to list accounts in creation order.
//
// Endpoint: GET /api/accounts
// Response: 200 OK with array of Account
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.ledgerService.ListAccounts(r.Context(), middleware.UserFrom(r.Context()))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccounts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, accounts)
}

// CreateAccount handles POST requests to add an account.
//
// Endpoint: POST /api/accounts
// Request Body: CreateAccountRequest (name, type, description)
// Response: 201 Created with Account
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if an account with the same name exists
// Error: 500 Internal Server Error if the ledger cannot be saved
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.ledgerService.CreateAccount(r.Context(), middleware.UserFrom(r.Context()), req)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToSaveLedger, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, account)
}

// DeleteAccount handles DELETE requests to remove an account. Trades booked
// to the account are kept and reported as orphaned on the dashboard.
//
// Endpoint: DELETE /api/accounts/{id}
// Response: 204 No Content
// Error: 404 Not Found if the account does not exist
// Error: 500 Internal Server Error if the ledger cannot be saved
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidID.Error(), "account ID is required")
		return
	}

	if err := h.ledgerService.DeleteAccount(r.Context(), middleware.UserFrom(r.Context()), id); err != nil {
		respondServiceError(w, apperrors.ErrFailedToSaveLedger, err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
