package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/TradeTrack-Backend/internal/apperrors"
	"github.com/ndewijer/TradeTrack-Backend/internal/model"
	"github.com/ndewijer/TradeTrack-Backend/internal/testutil"
)

func TestDirectionHandler(t *testing.T) {
	setupHandler := func(t *testing.T, mock *testutil.MockAIClient) *DirectionHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewDirectionHandler(testutil.NewTestDirectionService(t, db, mock))
	}

	analyze := func(t *testing.T, handler *DirectionHandler) model.DailyDirection {
		t.Helper()
		body := `{"image":"` + testutil.TinyPNG + `","mimeType":"image/png","instrument":"EURUSD"}`
		w := httptest.NewRecorder()
		handler.AnalyzeDirection(w, asTestUser(testutil.NewJSONRequest(http.MethodPost, "/api/directions", body)))
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var record model.DailyDirection
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&record)
		return record
	}

	t.Run("records a pending bias call", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockAIClient())

		record := analyze(t, handler)

		if record.Bias != model.BiasBullish || record.Outcome != model.OutcomePending {
			t.Errorf("Expected pending bullish record, got %+v", record)
		}

		w := httptest.NewRecorder()
		handler.Directions(w, asTestUser(httptest.NewRequest(http.MethodGet, "/api/directions", nil)))

		var history []model.DailyDirection
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&history)

		if len(history) != 1 || history[0].ID != record.ID {
			t.Errorf("Expected history with the new record, got %+v", history)
		}
	})

	t.Run("returns 400 without an image", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockAIClient())

		w := httptest.NewRecorder()
		handler.AnalyzeDirection(w, asTestUser(testutil.NewJSONRequest(http.MethodPost, "/api/directions", `{"instrument":"NQ"}`)))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("maps quota errors to 429", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockAIClient().WithError(apperrors.ErrAIQuotaExceeded))

		body := `{"image":"` + testutil.TinyPNG + `"}`
		w := httptest.NewRecorder()
		handler.AnalyzeDirection(w, asTestUser(testutil.NewJSONRequest(http.MethodPost, "/api/directions", body)))

		if w.Code != http.StatusTooManyRequests {
			t.Errorf("Expected 429, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("maps other model failures to 502", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockAIClient().WithError(apperrors.ErrAIMalformedResponse))

		body := `{"image":"` + testutil.TinyPNG + `"}`
		w := httptest.NewRecorder()
		handler.AnalyzeDirection(w, asTestUser(testutil.NewJSONRequest(http.MethodPost, "/api/directions", body)))

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected 502, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("updates and deletes an outcome", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockAIClient())
		record := analyze(t, handler)
		params := map[string]string{"uuid": record.ID}

		w := httptest.NewRecorder()
		handler.UpdateOutcome(w, asTestUser(testutil.NewRequestWithBody(http.MethodPut,
			"/api/directions/"+record.ID+"/outcome", jsonBody(`{"outcome":"Correct"}`), params)))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var updated model.DailyDirection
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&updated)
		if updated.Outcome != model.OutcomeCorrect {
			t.Errorf("Expected Correct, got %s", updated.Outcome)
		}

		w = httptest.NewRecorder()
		handler.DeleteDirection(w, asTestUser(testutil.NewRequestWithURLParams(http.MethodDelete, "/api/directions/"+record.ID, params)))
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		handler.DeleteDirection(w, asTestUser(testutil.NewRequestWithURLParams(http.MethodDelete, "/api/directions/"+record.ID, params)))
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects an unknown outcome", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockAIClient())
		record := analyze(t, handler)

		w := httptest.NewRecorder()
		handler.UpdateOutcome(w, asTestUser(testutil.NewRequestWithBody(http.MethodPut,
			"/api/directions/"+record.ID+"/outcome", jsonBody(`{"outcome":"Maybe"}`), map[string]string{"uuid": record.ID})))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
