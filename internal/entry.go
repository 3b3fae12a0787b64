// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/plazahub/plazadir/internal/api"
	"github.com/plazahub/plazadir/internal/directory"
	"github.com/plazahub/plazadir/internal/hours"
	"github.com/plazahub/plazadir/internal/places"
	"github.com/plazahub/plazadir/internal/plaza"
	"github.com/plazahub/plazadir/internal/sse"
	"github.com/plazahub/plazadir/internal/storage"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_path", cfg.Data.Path),
		slog.Bool("places_enabled", cfg.Places.Enabled()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize storage over the data directory.
	store, err := storage.NewFS(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Load the plaza data set. A failed initial load is not fatal: the
	// server starts anyway and reports unhealthy until the data appears.
	plazaSvc := plaza.NewService(store, plaza.Layout{
		PlazaFile:   cfg.Data.PlazaFile,
		IndexFile:   cfg.Data.IndexFile,
		BusinessDir: cfg.Data.BusinessDir,
	}, logger)
	if err := plazaSvc.Load(); err != nil {
		logger.Warn("initial plaza load failed", slog.String("error", err.Error()))
	}

	// Hours evaluator in the plaza's local time zone.
	loc, err := cfg.Hours.Location()
	if err != nil {
		return fmt.Errorf("init hours: %w", err)
	}
	eval := hours.NewEvaluator(loc, cfg.Hours.WrapOvernight)
	engine := directory.NewEngine(eval)

	// Live places service, only when an API key is configured.
	var placesSvc *places.Service
	if cfg.Places.Enabled() {
		client := places.NewClient(cfg.Places.BaseURL, cfg.Places.APIKey, cfg.Places.Timeout())
		placesSvc = places.NewService(client, cfg.Places.CacheTTL(), logger)
		logger.Info("live place lookups enabled",
			slog.Duration("cache_ttl", cfg.Places.CacheTTL()))
	}

	// SSE broker.
	broker := sse.NewBroker()
	defer broker.Close()

	// Build API router.
	apiRouter := api.NewRouter(plazaSvc, engine, eval, placesSvc, cfg.Hours.StaleAfter(), broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Process health endpoints. /api/health reports data health separately.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the data directory and notify SSE subscribers on reload.
	if cfg.Data.Watch {
		g.Go(func() error {
			err := plaza.Watch(gCtx, plazaSvc, cfg.Data.Path, logger, func() {
				if list, err := plazaSvc.Businesses(); err == nil {
					broker.PublishPlazaReloaded(len(list))
				}
			})
			if err != nil {
				logger.Warn("data watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
