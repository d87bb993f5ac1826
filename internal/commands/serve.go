package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/uhudbuilders/sitecms/internal/auth"
	"github.com/uhudbuilders/sitecms/internal/config"
	"github.com/uhudbuilders/sitecms/internal/httpapi"
	"github.com/uhudbuilders/sitecms/internal/upload"
)

const shutdownTimeout = 10 * time.Second

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := newLogger(cfg.Log.Level)

			st, err := getStore(cfg, false)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
				}
			}()

			if migrate {
				applied, err := getMigrator(st).Up(cmd.Context())
				if err != nil {
					return err
				}
				for _, mr := range applied {
					log.Info().Str("version", mr.Version).Str("name", mr.Name).Msg("migration applied")
				}
			}

			sessions, err := auth.NewManager(st, auth.NewHasher(auth.DefaultArgon2Params()), auth.SessionConfig{
				Secret: cfg.Session.Secret,
				Secure: cfg.Session.Secure,
			})
			if err != nil {
				return err
			}
			uploads, err := upload.NewRelay(upload.Config{
				Dir:          cfg.Upload.Dir,
				MaxBytes:     cfg.Upload.MaxBytes,
				AllowedTypes: cfg.Upload.AllowedTypes,
			})
			if err != nil {
				return err
			}

			handler, err := httpapi.NewRouter(httpapi.RouterConfig{
				Store:              st,
				Sessions:           sessions,
				Uploads:            uploads,
				UploadDir:          cfg.Upload.Dir,
				UploadTimeout:      cfg.Upload.Timeout,
				SiteDistDir:        cfg.Server.SiteDistDir,
				CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
				ContactRateLimit:   cfg.RateLimit.Contact,
				LoginRateLimit:     cfg.RateLimit.Login,
				DevMode:            cfg.Server.DevMode,
				Log:                log,
			})
			if err != nil {
				return fmt.Errorf("failed to build router: %w", err)
			}

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      10 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Str("driver", cfg.Database.Driver).Msg("sitecms listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err, ok := <-errCh:
				if ok {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case sig := <-quit:
				log.Info().Str("signal", sig.String()).Msg("shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
	cmd.Flags().Bool("migrate", false, "Apply pending migrations before listening")
	return cmd
}
