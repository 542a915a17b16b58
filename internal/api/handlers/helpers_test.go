package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/middleware"
	"github.com/ndewijer/TradeTrack-Backend/internal/testutil"
)

// asTestUser scopes req to testutil.TestUser the way UserScope would.
func asTestUser(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), testutil.TestUser))
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
