package middleware

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether the database can be reached.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RequireDatabase answers 503 without calling next when the database does
// not answer a ping within timeout.
func RequireDatabase(db Pinger, timeout time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			err := db.Ping(ctx)
			cancel()
			if err != nil {
				writeErr(w, http.StatusServiceUnavailable, "database_unavailable", "database unavailable")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
