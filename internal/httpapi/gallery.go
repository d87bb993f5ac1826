package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uhudbuilders/sitecms/internal/store"
)

func (a *API) ListGallery(w http.ResponseWriter, r *http.Request) {
	items, err := a.store.ListGallery(r.Context())
	if err != nil {
		a.writeStoreErr(w, r, err, "gallery item")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var in store.GalleryInput
	if err := decodeJSON(w, r, &in); err != nil {
		a.writeStoreErr(w, r, err, "gallery item")
		return
	}
	item, err := a.store.CreateGalleryItem(r.Context(), in)
	if err != nil {
		a.writeStoreErr(w, r, err, "gallery item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.store.DeleteGalleryItem(r.Context(), id); err != nil {
		a.writeStoreErr(w, r, err, "gallery item")
		return
	}
	writeJSON(w, http.StatusOK, deleted{Success: true, ID: id})
}
