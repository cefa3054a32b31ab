package ratelimit

import (
	"net/http"

	"go.uber.org/zap"
)

// Middleware rejects requests over the limit with 429. Keys are
// scope plus the client IP. A backend error lets the request through.
func Middleware(b Backend, scope string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			ok, err := b.Take(r.Context(), scope+":"+ip)
			if err != nil {
				logger.Warn("rate limit backend failed; allowing request",
					zap.String("scope", scope), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				logger.Info("rate limited", zap.String("scope", scope), zap.String("ip", ip))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"detail":"too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
