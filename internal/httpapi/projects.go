package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uhudbuilders/sitecms/internal/store"
)

func (a *API) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.store.ListProjects(r.Context())
	if err != nil {
		a.writeStoreErr(w, r, err, "project")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (a *API) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := a.store.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeStoreErr(w, r, err, "project")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in store.ProjectInput
	if err := decodeJSON(w, r, &in); err != nil {
		a.writeStoreErr(w, r, err, "project")
		return
	}
	p, err := a.store.CreateProject(r.Context(), in)
	if err != nil {
		a.writeStoreErr(w, r, err, "project")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (a *API) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var in store.ProjectInput
	if err := decodeJSON(w, r, &in); err != nil {
		a.writeStoreErr(w, r, err, "project")
		return
	}
	p, err := a.store.UpdateProject(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		a.writeStoreErr(w, r, err, "project")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.store.DeleteProject(r.Context(), id); err != nil {
		a.writeStoreErr(w, r, err, "project")
		return
	}
	writeJSON(w, http.StatusOK, deleted{Success: true, ID: id})
}

func (a *API) ReorderProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Direction store.Direction `json:"direction"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		a.writeStoreErr(w, r, err, "project")
		return
	}
	projects, err := a.store.ReorderProject(r.Context(), chi.URLParam(r, "id"), body.Direction)
	if err != nil {
		a.writeStoreErr(w, r, err, "project")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}
