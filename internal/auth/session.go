// Package auth signs the single site administrator in and out and guards the
// admin API.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/uhudbuilders/sitecms/internal/models"
	"github.com/uhudbuilders/sitecms/internal/store"
)

// CookieName is the name of the admin session cookie.
const CookieName = "sitecms_session"

const (
	sessionAdminKey = "admin_id"
	sessionMaxAge   = 7 * 24 * 60 * 60
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoSession is returned when the request carries no valid admin session.
	ErrNoSession = errors.New("authentication required")
)

// AdminFinder loads admin accounts. *store.Store satisfies it.
type AdminFinder interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetAdmin(ctx context.Context, id string) (*models.AdminUser, error)
}

// SessionConfig configures the admin session cookie.
type SessionConfig struct {
	Secret string
	Secure bool
}

// Manager issues and checks admin sessions.
type Manager struct {
	admins AdminFinder
	hasher *Hasher
	store  *sessions.CookieStore
}

func NewManager(admins AdminFinder, hasher *Hasher, cfg SessionConfig) (*Manager, error) {
	if len(cfg.Secret) < 32 {
		return nil, errors.New("SESSION_SECRET must be at least 32 characters")
	}
	cs := sessions.NewCookieStore([]byte(cfg.Secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{admins: admins, hasher: hasher, store: cs}, nil
}

// Authenticate checks an email and password against the stored admin.
func (m *Manager) Authenticate(ctx context.Context, email, password string) (*models.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	admin, err := m.admins.GetAdminByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !m.hasher.Verify(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// Login starts a session for admin on the response.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, admin *models.AdminUser) error {
	sess, _ := m.store.Get(r, CookieName)
	sess.Values[sessionAdminKey] = admin.ID
	sess.Options.MaxAge = sessionMaxAge
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Logout expires the session cookie. It succeeds without a session.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, CookieName)
	delete(sess.Values, sessionAdminKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current returns the admin signed in on r.
func (m *Manager) Current(r *http.Request) (*models.AdminUser, error) {
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		return nil, ErrNoSession
	}
	id, ok := sess.Values[sessionAdminKey].(string)
	if !ok || id == "" {
		return nil, ErrNoSession
	}
	admin, err := m.admins.GetAdmin(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// RequireAdmin rejects requests without a valid admin session with 401 and
// puts the admin into the request context otherwise.
func (m *Manager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, err := m.Current(r)
		if err != nil {
			status, code := http.StatusUnauthorized, "unauthorized"
			msg := ErrNoSession.Error()
			if !errors.Is(err, ErrNoSession) {
				status, code, msg = http.StatusServiceUnavailable, "database_unavailable", "database unavailable"
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": msg, "code": code})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
	})
}

type contextKey string

const adminContextKey contextKey = "admin"

// WithAdmin injects the admin into the context.
func WithAdmin(ctx context.Context, admin *models.AdminUser) context.Context {
	return context.WithValue(ctx, adminContextKey, admin)
}

// AdminFromContext returns the admin from the context, or nil.
func AdminFromContext(ctx context.Context) *models.AdminUser {
	v := ctx.Value(adminContextKey)
	if v == nil {
		return nil
	}
	a, _ := v.(*models.AdminUser)
	return a
}
