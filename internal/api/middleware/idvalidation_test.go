package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/middleware"
)

func serveWithParam(mw func(http.Handler) http.Handler, param, value string) (called bool, status int) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(param, value)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	mw(next).ServeHTTP(w, req)
	return called, w.Code
}

func TestIDValidationMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		mw         func(http.Handler) http.Handler
		param      string
		value      string
		wantCalled bool
		wantStatus int
	}{
		{"valid UUID", middleware.ValidateUUIDMiddleware, "uuid", "550e8400-e29b-41d4-a716-446655440000", true, http.StatusOK},
		{"invalid UUID", middleware.ValidateUUIDMiddleware, "uuid", "invalid-id", false, http.StatusBadRequest},
		{"empty UUID", middleware.ValidateUUIDMiddleware, "uuid", "", false, http.StatusBadRequest},
		{"valid ULID", middleware.ValidateULIDMiddleware, "id", "01HQ3V5K8J9X2M4N6P7R8S9T0V", true, http.StatusOK},
		{"UUID where ULID expected", middleware.ValidateULIDMiddleware, "id", "550e8400-e29b-41d4-a716-446655440000", false, http.StatusBadRequest},
		{"empty ULID", middleware.ValidateULIDMiddleware, "id", "", false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called, status := serveWithParam(tt.mw, tt.param, tt.value)

			if called != tt.wantCalled {
				t.Errorf("Expected handler called = %v, got %v", tt.wantCalled, called)
			}
			if status != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, status)
			}
		})
	}
}

func TestValidateParam(t *testing.T) {
	errBad := errors.New("bad")
	mw := middleware.ValidateParam("code", "code", func(s string) error {
		if s != "ok" {
			return errBad
		}
		return nil
	})

	if called, _ := serveWithParam(mw, "code", "ok"); !called {
		t.Error("Expected next handler to be called")
	}
	if called, status := serveWithParam(mw, "code", "nope"); called || status != http.StatusBadRequest {
		t.Errorf("Expected 400 without calling next, got called=%v status=%d", called, status)
	}
}
