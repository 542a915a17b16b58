package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/response"
	"github.com/ndewijer/TradeTrack-Backend/internal/validation"
)

// UserHeader names the request header that selects the ledger to work on.
// There are no credentials; this is a local single-machine login shim.
const UserHeader = "X-User"

// FallbackUser is used when neither the header nor a configured default is set.
const FallbackUser = "trader"

type userKey struct{}

// UserScope stores the request's user in the context. Requests without the
// header use defaultUser.
func UserScope(defaultUser string) func(http.Handler) http.Handler {
	if defaultUser == "" {
		defaultUser = FallbackUser
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := strings.TrimSpace(r.Header.Get(UserHeader))
			if user == "" {
				user = defaultUser
			}

			if err := validation.ValidateUsername(user); err != nil {
				response.RespondError(w, http.StatusBadRequest, "invalid user", err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx scoped to user.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFrom returns the user stored by UserScope, or FallbackUser.
func UserFrom(ctx context.Context) string {
	if user, ok := ctx.Value(userKey{}).(string); ok && user != "" {
		return user
	}
	return FallbackUser
}
