package httpapi

import (
	"net/http"

	"github.com/uhudbuilders/sitecms/internal/models"
	"github.com/uhudbuilders/sitecms/internal/store"
)

func (a *API) GetSettings(w http.ResponseWriter, r *http.Request) {
	doc, err := a.store.GetSettings(r.Context())
	if err != nil {
		a.writeStoreErr(w, r, err, "settings")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// PutSettings replaces the whole settings document. Anything but a JSON
// object is rejected.
func (a *API) PutSettings(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := decodeJSON(w, r, &body); err != nil {
		a.writeStoreErr(w, r, err, "settings")
		return
	}
	obj, ok := body.(map[string]any)
	if !ok {
		a.writeStoreErr(w, r, &store.ValidationError{Problems: []string{"settings must be a JSON object"}}, "settings")
		return
	}
	doc, err := a.store.PutSettings(r.Context(), models.SettingsDocument(obj))
	if err != nil {
		a.writeStoreErr(w, r, err, "settings")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
