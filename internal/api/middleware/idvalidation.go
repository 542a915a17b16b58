// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/response"
	"github.com/ndewijer/TradeTrack-Backend/internal/validation"
)

var (
	// ValidateUUIDMiddleware rejects routes whose {uuid} parameter is not a
	// UUID. Direction records are identified by UUIDs.
	ValidateUUIDMiddleware = ValidateParam("uuid", "UUID", validation.ValidateUUID)

	// ValidateULIDMiddleware rejects routes whose {id} parameter is not a
	// ULID. Import previews are identified by ULIDs.
	ValidateULIDMiddleware = ValidateParam("id", "ULID", validation.ValidateULID)
)

// ValidateParam returns middleware that answers 400 Bad Request unless the
// URL parameter named param is present and passes validate. kind names the
// expected format in the error message.
//
// Example usage in router:
//
//	r.Route("/{uuid}", func(r chi.Router) {
//	    r.Use(middleware.ValidateUUIDMiddleware)
//	    r.Put("/outcome", handler.UpdateOutcome)
//	})
func ValidateParam(param, kind string, validate func(string) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := chi.URLParam(r, param)
			if value == "" {
				response.RespondError(w, http.StatusBadRequest, "valid "+kind+" is required", "")
				return
			}

			if err := validate(value); err != nil {
				response.RespondError(w, http.StatusBadRequest, "invalid "+kind+" format", err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
