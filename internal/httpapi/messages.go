package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uhudbuilders/sitecms/internal/httpapi/middleware"
	"github.com/uhudbuilders/sitecms/internal/store"
)

func (a *API) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := a.store.ListMessages(r.Context())
	if err != nil {
		a.writeStoreErr(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// CreateMessage stores a contact form submission. It is public.
func (a *API) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var in store.ContactInput
	if err := decodeJSON(w, r, &in); err != nil {
		a.writeStoreErr(w, r, err, "message")
		return
	}
	msg, err := a.store.CreateMessage(r.Context(), in)
	if err != nil {
		a.writeStoreErr(w, r, err, "message")
		return
	}
	middleware.RecordContactMessage()
	writeJSON(w, http.StatusCreated, msg)
}

func (a *API) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.store.DeleteMessage(r.Context(), id); err != nil {
		a.writeStoreErr(w, r, err, "message")
		return
	}
	writeJSON(w, http.StatusOK, deleted{Success: true, ID: id})
}
