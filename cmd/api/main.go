package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kheyer/RESTful-App/internal/config"
	"github.com/kheyer/RESTful-App/internal/handlers"
	"github.com/kheyer/RESTful-App/internal/identity"
	"github.com/kheyer/RESTful-App/internal/metrics"
	"github.com/kheyer/RESTful-App/internal/oauth"
	"github.com/kheyer/RESTful-App/internal/repository"
	"github.com/kheyer/RESTful-App/internal/session"
	"github.com/kheyer/RESTful-App/internal/storage"
	"github.com/kheyer/RESTful-App/internal/view"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database
	store, err := repository.Open(cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Sessions
	sessions := session.NewManager([]byte(cfg.SessionSecret), false)

	// OAuth
	resolver := identity.NewResolver(store)
	provider := oauth.NewGoogle(cfg.GoogleKey, cfg.GoogleSecret, cfg.GoogleCallback)
	bridge := oauth.NewBridge(provider, resolver, cfg.GoogleKey, logger)

	// Views
	templateDir, _ := filepath.Abs("web/templates")
	render, err := view.New(templateDir, logger)
	if err != nil {
		logger.Error("failed to load templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Object storage is optional; without it the upload route is off.
	var uploader *storage.Uploader
	if cfg.StorageEnabled() {
		uploader, err = storage.NewUploader(context.Background(), storage.Config{
			AccountID:       cfg.AccountID,
			AccessKeyID:     cfg.AccessKeyID,
			AccessKeySecret: cfg.AccessKeySecret,
			Bucket:          cfg.BucketName,
			PublicURL:       cfg.PublicURL,
		})
		if err != nil {
			logger.Error("failed to configure object storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		logger.Warn("object storage not configured, picture uploads disabled")
	}

	// Chi
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)

	h := handlers.New(store, resolver, sessions, bridge, render, uploader, logger)
	h.Routes(r)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	staticDir, _ := filepath.Abs("web/static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("starting catalog server", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
