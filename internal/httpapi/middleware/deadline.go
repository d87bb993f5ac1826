package middleware

import (
	"net/http"
	"time"
)

// ExtendDeadlines moves the connection read and write deadlines d into the
// future, overriding the server-wide timeouts for slow request bodies such as
// uploads. Writers that cannot set deadlines are left alone.
func ExtendDeadlines(d time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := http.NewResponseController(w)
			deadline := time.Now().Add(d)
			_ = rc.SetReadDeadline(deadline)
			_ = rc.SetWriteDeadline(deadline)
			next.ServeHTTP(w, r)
		})
	}
}
