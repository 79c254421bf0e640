// Package main implements the daily tarot reading server: per-day card
// sessions over an HTTP transport, with content-driven interpretive text.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/victorward/dailytarot/internal/catalog"
	"github.com/victorward/dailytarot/internal/config"
	"github.com/victorward/dailytarot/internal/content"
	"github.com/victorward/dailytarot/internal/meanings"
	"github.com/victorward/dailytarot/internal/platform/logger"
	"github.com/victorward/dailytarot/internal/service"
	"github.com/victorward/dailytarot/internal/session"
)

// pruneInterval is how often stale per-day sessions are swept. Purely
// memory hygiene; correctness relies on day-keyed lookups.
const pruneInterval = 6 * time.Hour

type application struct {
	config   *config.Config
	logger   *slog.Logger
	engine   *session.Engine
	readings *service.ReadingService
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logr := logger.Setup(cfg.Server)
	logr.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("assets_dir", cfg.Content.AssetsDir),
		slog.String("meanings_path", cfg.Content.MeaningsPath))

	app, err := newApplication(cfg, logr)
	if err != nil {
		return err
	}
	return app.serve()
}

func newApplication(cfg *config.Config, logr *slog.Logger) (*application, error) {
	// A missing meanings file degrades to placeholder captions; a missing
	// asset directory is fatal because there is nothing to deal.
	raw, err := os.ReadFile(cfg.Content.MeaningsPath)
	if err != nil {
		logr.Warn("meanings file unavailable, running with placeholders",
			slog.String("path", cfg.Content.MeaningsPath),
			slog.String("error", err.Error()))
		raw = nil
	}
	store, _ := content.Load(raw, logr)

	assetsFS := os.DirFS(cfg.Content.AssetsDir)
	cat, err := catalog.New(assetsFS, nil)
	if err != nil {
		return nil, fmt.Errorf("building card catalog from %s: %w", cfg.Content.AssetsDir, err)
	}
	logr.Info("card catalog ready", slog.Int("assets", cat.Len()))

	engine := session.NewEngine(cat, session.SystemClock{}, logr)
	resolver := meanings.NewResolver(store, logr)
	assets := service.NewFSAssetSource(assetsFS)
	readings := service.NewReadingService(engine, cat, resolver, assets, cfg.Content.Lang, logr)

	return &application{
		config:   cfg,
		logger:   logr,
		engine:   engine,
		readings: readings,
	}, nil
}

func (app *application) serve() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.pruneLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (app *application) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.engine.PruneBefore(time.Now().Format(time.DateOnly))
		}
	}
}
