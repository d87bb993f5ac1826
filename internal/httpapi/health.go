package httpapi

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Health serves /health with a database check.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]string)
	if err := a.store.Ping(ctx); err != nil {
		checks["database"] = "down: " + err.Error()
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Checks:  checks,
			Message: "one or more checks failed",
		})
		return
	}
	checks["database"] = "ok"
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Checks: checks})
}
