package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sitecms_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitecms_auth_attempts_total",
			Help: "Total admin login attempts by outcome",
		},
		[]string{"success"},
	)
	uploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitecms_uploads_total",
			Help: "Total upload requests by outcome",
		},
		[]string{"outcome"},
	)
	contactMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sitecms_contact_messages_total",
			Help: "Total contact form submissions stored",
		},
	)
)

// PrometheusMiddleware records request duration. The path label is the
// matched route pattern so ids do not blow up label cardinality.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ww.Status())
		httpRequestDuration.WithLabelValues(r.Method, routePattern(r), status).Observe(duration)
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// RecordAuthAttempt records a login attempt for Prometheus.
func RecordAuthAttempt(success bool) {
	authAttempts.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// RecordUpload records an upload outcome ("stored", "too_large", ...).
func RecordUpload(outcome string) {
	uploads.WithLabelValues(outcome).Inc()
}

// RecordContactMessage counts a stored contact form submission.
func RecordContactMessage() {
	contactMessages.Inc()
}
