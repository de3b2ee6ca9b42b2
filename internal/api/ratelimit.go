package api

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	domainerrors "github.com/shelfpost/linkcheck/internal/errors"
	"github.com/shelfpost/linkcheck/internal/ratelimit"
)

// RateLimitMiddleware rejects clients that exceed the limiter with 429.
// The client key is the request's remote IP, which middleware.RealIP has
// already resolved from proxy headers.
func RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)

			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded", "ip", key, "path", r.URL.Path)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(&APIError{
					Code:    string(domainerrors.CodeRateLimited),
					Message: "Too many requests. Please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
