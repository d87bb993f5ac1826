package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/uhudbuilders/sitecms/internal/auth"
	"github.com/uhudbuilders/sitecms/internal/httpapi/middleware"
	"github.com/uhudbuilders/sitecms/internal/models"
)

var validate = validator.New()

type sessionResponse struct {
	User *models.AdminUser `json:"user"`
}

func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		a.writeStoreErr(w, r, err, "admin")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "email and password are required")
		return
	}

	admin, err := a.sessions.Authenticate(r.Context(), body.Email, body.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		middleware.RecordAuthAttempt(false)
		a.log.Warn().Str("email", body.Email).Msg("failed admin login")
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid email or password")
		return
	}
	if err != nil {
		a.writeStoreErr(w, r, err, "admin")
		return
	}
	if err := a.sessions.Login(w, r, admin); err != nil {
		a.writeStoreErr(w, r, err, "admin")
		return
	}
	middleware.RecordAuthAttempt(true)
	writeJSON(w, http.StatusOK, sessionResponse{User: admin})
}

func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Logout(w, r); err != nil {
		a.writeStoreErr(w, r, err, "session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *API) Session(w http.ResponseWriter, r *http.Request) {
	admin, err := a.sessions.Current(r)
	if errors.Is(err, auth.ErrNoSession) {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Not signed in")
		return
	}
	if err != nil {
		a.writeStoreErr(w, r, err, "session")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: admin})
}
