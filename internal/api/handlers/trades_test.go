package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/TradeTrack-Backend/internal/model"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
	"github.com/ndewijer/TradeTrack-Backend/internal/testutil"
)

func TestTradeHandler_Trades(t *testing.T) {
	setupHandler := func(t *testing.T) (*TradeHandler, *service.LedgerService, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ls := testutil.NewTestLedgerService(t, db)
		return NewTradeHandler(ls), ls, db
	}

	t.Run("returns empty array when no trades exist", func(t *testing.T) {
		handler, _, _ := setupHandler(t)

		req := asTestUser(httptest.NewRequest(http.MethodGet, "/api/trades", nil))
		w := httptest.NewRecorder()

		handler.Trades(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response == nil {
			t.Error("Expected non-nil array, got nil")
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d trades", len(response))
		}
	})

	t.Run("filters by account and side", func(t *testing.T) {
		handler, ls, _ := setupHandler(t)

		want := testutil.NewTrade().WithAccount("Just Capital").Short().Persist(t, ls, testutil.TestUser)
		testutil.NewTrade().WithAccount("Just Capital").Persist(t, ls, testutil.TestUser)
		testutil.NewTrade().WithAccount("Personal Capital").Short().Persist(t, ls, testutil.TestUser)

		req := asTestUser(testutil.NewRequestWithQueryParams(http.MethodGet, "/api/trades", map[string]string{
			"account": "Just Capital",
			"side":    "Short",
		}))
		w := httptest.NewRecorder()

		handler.Trades(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 || response[0].ID != want.ID {
			t.Errorf("Expected only trade %s, got %+v", want.ID, response)
		}
	})

	t.Run("returns 400 for an invalid filter", func(t *testing.T) {
		handler, _, _ := setupHandler(t)

		req := asTestUser(testutil.NewRequestWithQueryParams(http.MethodGet, "/api/trades", map[string]string{
			"from": "2024-13-01",
		}))
		w := httptest.NewRecorder()

		handler.Trades(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_CreateTrade(t *testing.T) {
	setupHandler := func(t *testing.T) *TradeHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewTradeHandler(testutil.NewTestLedgerService(t, db))
	}

	t.Run("creates a trade with computed pnl", func(t *testing.T) {
		handler := setupHandler(t)

		body := `{"instrument":"NQ","side":"Long","accountType":"Personal Capital","entryPrice":18000,"exitPrice":18010,"size":2}`
		req := asTestUser(testutil.NewJSONRequest(http.MethodPost, "/api/trades", body))
		w := httptest.NewRecorder()

		handler.CreateTrade(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.PnL != 20 {
			t.Errorf("Expected pnl 20, got %v", response.PnL)
		}
		if response.MarketType != model.MarketFutures {
			t.Errorf("Expected Futures, got %s", response.MarketType)
		}
	})

	t.Run("returns 400 with field errors", func(t *testing.T) {
		handler := setupHandler(t)

		req := asTestUser(testutil.NewJSONRequest(http.MethodPost, "/api/trades", `{"side":"Up"}`))
		w := httptest.NewRecorder()

		handler.CreateTrade(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		handler := setupHandler(t)

		req := asTestUser(testutil.NewJSONRequest(http.MethodPost, "/api/trades", `{"instrument":`))
		w := httptest.NewRecorder()

		handler.CreateTrade(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_DeleteTrade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ls := testutil.NewTestLedgerService(t, db)
	handler := NewTradeHandler(ls)
	trade := testutil.NewTrade().WithID("mt5-abc-3").Persist(t, ls, testutil.TestUser)

	t.Run("deletes an imported trade by its opaque id", func(t *testing.T) {
		req := asTestUser(testutil.NewRequestWithURLParams(http.MethodDelete, "/api/trades/"+trade.ID, map[string]string{"id": trade.ID}))
		w := httptest.NewRecorder()

		handler.DeleteTrade(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 when the trade is gone", func(t *testing.T) {
		req := asTestUser(testutil.NewRequestWithURLParams(http.MethodDelete, "/api/trades/"+trade.ID, map[string]string{"id": trade.ID}))
		w := httptest.NewRecorder()

		handler.DeleteTrade(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
