package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/TradeTrack-Backend/internal/model"
	"github.com/ndewijer/TradeTrack-Backend/internal/testutil"
)

func TestAccountHandler(t *testing.T) {
	setupHandler := func(t *testing.T) *AccountHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewAccountHandler(testutil.NewTestLedgerService(t, db))
	}

	t.Run("lists the seed accounts", func(t *testing.T) {
		handler := setupHandler(t)

		req := asTestUser(httptest.NewRequest(http.MethodGet, "/api/accounts", nil))
		w := httptest.NewRecorder()

		handler.Accounts(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Account
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 || response[0].Name != "Personal Capital" {
			t.Errorf("Expected seed accounts, got %+v", response)
		}
	})

	t.Run("creates an account", func(t *testing.T) {
		handler := setupHandler(t)

		req := asTestUser(testutil.NewJSONRequest(http.MethodPost, "/api/accounts", `{"name":"Apex 50k","type":"Challenge"}`))
		w := httptest.NewRecorder()

		handler.CreateAccount(w, req)

		if w.Code != http.StatusCreated {
			t.Errorf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 409 for a duplicate name", func(t *testing.T) {
		handler := setupHandler(t)

		req := asTestUser(testutil.NewJSONRequest(http.MethodPost, "/api/accounts", `{"name":"Just Capital","type":"Capital"}`))
		w := httptest.NewRecorder()

		handler.CreateAccount(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for an unknown type", func(t *testing.T) {
		handler := setupHandler(t)

		req := asTestUser(testutil.NewJSONRequest(http.MethodPost, "/api/accounts", `{"name":"X","type":"Savings"}`))
		w := httptest.NewRecorder()

		handler.CreateAccount(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("deletes a seed account", func(t *testing.T) {
		handler := setupHandler(t)

		req := asTestUser(testutil.NewRequestWithURLParams(http.MethodDelete, "/api/accounts/capital-1", map[string]string{"id": "capital-1"}))
		w := httptest.NewRecorder()

		handler.DeleteAccount(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for an unknown account", func(t *testing.T) {
		handler := setupHandler(t)

		req := asTestUser(testutil.NewRequestWithURLParams(http.MethodDelete, "/api/accounts/x", map[string]string{"id": "x"}))
		w := httptest.NewRecorder()

		handler.DeleteAccount(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
