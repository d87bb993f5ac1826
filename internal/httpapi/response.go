package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/uhudbuilders/sitecms/internal/store"
)

const maxJSONBody = 1 << 20

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusServiceUnavailable:
		return ErrCodeDatabaseUnavailable
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type deleted struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &store.ValidationError{Problems: []string{"request body is empty"}}
		}
		return &store.ValidationError{Problems: []string{fmt.Sprintf("invalid JSON body: %v", err)}}
	}
	return nil
}

// writeStoreErr maps a store error onto its HTTP status. Unexpected errors
// are logged and answered with a generic message.
func (a *API) writeStoreErr(w http.ResponseWriter, r *http.Request, err error, what string) {
	var verr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, what+" not found")
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   verr.Error(),
			"code":    ErrCodeInvalidRequest,
			"details": verr.Problems,
		})
	case errors.Is(err, store.ErrUnavailable):
		writeErr(w, http.StatusServiceUnavailable, ErrCodeDatabaseUnavailable, "database unavailable")
	default:
		a.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
