// Package httpapi serves the site's JSON API, uploaded files and the built
// single-page app.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/uhudbuilders/sitecms/internal/auth"
	"github.com/uhudbuilders/sitecms/internal/httpapi/middleware"
	"github.com/uhudbuilders/sitecms/internal/store"
	"github.com/uhudbuilders/sitecms/internal/upload"
)

const (
	dbPingTimeout        = 2 * time.Second
	defaultUploadTimeout = 2 * time.Minute
)

type RouterConfig struct {
	Store    *store.Store
	Sessions *auth.Manager
	Uploads  *upload.Relay
	// UploadDir is served under /uploads/.
	UploadDir string
	// UploadTimeout bounds reading an upload body, replacing the server's
	// ReadTimeout and WriteTimeout on that route. Zero uses two minutes.
	UploadTimeout time.Duration
	// SiteDistDir holds the built SPA; empty serves only the API.
	SiteDistDir        string
	CORSAllowedOrigins []string
	ContactRateLimit   string
	LoginRateLimit     string
	DevMode            bool
	Log                zerolog.Logger
}

// API holds the handler dependencies.
type API struct {
	store    *store.Store
	sessions *auth.Manager
	uploads  *upload.Relay
	log      zerolog.Logger
}

func NewRouter(cfg RouterConfig) (http.Handler, error) {
	a := &API{
		store:    cfg.Store,
		sessions: cfg.Sessions,
		uploads:  cfg.Uploads,
		log:      cfg.Log,
	}

	contactLimit, err := middleware.NewIPRateLimiter(cfg.ContactRateLimit)
	if err != nil {
		return nil, err
	}
	loginLimit, err := middleware.NewIPRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(chimid.Recoverer)
	r.Use(middleware.PrometheusMiddleware)
	r.Use(middleware.NewSecure(middleware.SecureOptions(cfg.DevMode)))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins, nil, nil))

	r.Get("/health", a.Health)
	r.Handle("/metrics", promhttp.Handler())
	if cfg.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", noDirListing(http.FileServer(http.Dir(cfg.UploadDir)))))
	}

	requireAdmin := a.sessions.RequireAdmin
	uploadTimeout := cfg.UploadTimeout
	if uploadTimeout <= 0 {
		uploadTimeout = defaultUploadTimeout
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireDatabase(a.store, dbPingTimeout))

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimit).Post("/login", a.Login)
			r.Post("/logout", a.Logout)
			r.Get("/session", a.Session)
		})

		r.Get("/projects", a.ListProjects)
		r.Get("/projects/{id}", a.GetProject)
		r.Get("/gallery", a.ListGallery)
		r.Get("/settings", a.GetSettings)
		r.With(contactLimit).Post("/messages", a.CreateMessage)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/projects", a.CreateProject)
			r.Put("/projects/{id}", a.UpdateProject)
			r.Delete("/projects/{id}", a.DeleteProject)
			r.Post("/projects/{id}/reorder", a.ReorderProject)

			r.Post("/gallery", a.CreateGalleryItem)
			r.Delete("/gallery/{id}", a.DeleteGalleryItem)

			r.Get("/messages", a.ListMessages)
			r.Delete("/messages/{id}", a.DeleteMessage)

			r.Post("/settings", a.PutSettings)
			r.With(middleware.ExtendDeadlines(uploadTimeout)).Post("/upload", a.Upload)
		})

		r.NotFound(apiNotFound)
	})

	if cfg.SiteDistDir != "" {
		r.NotFound(spaHandler(cfg.SiteDistDir))
	}
	return r, nil
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusNotFound, ErrCodeNotFound, "API Not Found")
}
