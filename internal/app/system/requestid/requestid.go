// Package requestid tags every request with an id that shows up in logs and
// in the X-Request-ID response header.
package requestid

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const Header = "X-Request-ID"

// maxLen bounds ids accepted from clients.
const maxLen = 128

// Middleware reuses a sane incoming X-Request-ID or generates a uuid. The id
// is stored under chi's RequestIDKey so middleware.GetReqID finds it.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(Header))
		if id == "" || len(id) > maxLen {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// From returns the request id stored in ctx, or "".
func From(ctx context.Context) string {
	return middleware.GetReqID(ctx)
}
