// Package app wires the dashboard server: configuration, logging, metrics,
// services, handlers and the HTTP listener with graceful shutdown.
package app

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
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"insightcli/internal/analytics"
	"insightcli/internal/config"
	apierrors "insightcli/internal/errors"
	"insightcli/internal/infrastructure"
	"insightcli/internal/middleware"
	"insightcli/internal/services"
	handlers "insightcli/internal/transport/http"
)

// Version is the reported application version, overridable at build time
var Version = "dev"

// Application is the dashboard server container
type Application struct {
	Config  *config.Config
	Paths   *config.Paths
	Logger  *slog.Logger
	Metrics *infrastructure.Metrics
	Router  *chi.Mux
	Server  *http.Server

	DataService   *services.DataService
	ReportService *services.ReportService
}

// NewApplication builds the application with its full dependency graph
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port),
		slog.String("data_dir", paths.DataDir))

	app := &Application{
		Config:  cfg,
		Paths:   paths,
		Logger:  logger,
		Metrics: infrastructure.NewMetrics(),
	}

	app.DataService = services.NewDataService(paths, logger, app.Metrics)
	app.ReportService = services.NewReportService(app.DataService, paths, logger, analytics.DogAnalyzerConfig{})

	app.setupRouter()
	app.createServer()
	return app, nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))

	if a.Config.Server.RateLimit.Enabled {
		r.Use(middleware.RateLimit(a.Config.Server.RateLimit.RPS, a.Config.Server.RateLimit.Burst))
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Metrics(a.Metrics))
		r.Mount("/dogs", handlers.NewDogHandler(a.DataService, a.ReportService, a.Logger, errorHandler).Routes())
		r.Mount("/salary", handlers.NewSalaryHandler(a.DataService, a.ReportService, a.Logger, errorHandler).Routes())
		r.Mount("/export", handlers.NewExportHandler(a.ReportService, a.Logger, errorHandler).Routes())
		r.Mount("/health", handlers.NewHealthHandler(a.DataService, a.Logger, Version).Routes())
	})

	// Outside the API group so scrapes skip the request middleware
	r.Handle("/metrics", a.Metrics.Handler())

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start runs the HTTP listener until the context is cancelled
func (a *Application) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		return a.Stop()
	}
}

// Stop shuts the server down gracefully within the configured timeout
func (a *Application) Stop() error {
	timeout := a.Config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.Logger.Info("shutting down", slog.Duration("timeout", timeout))
	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	infrastructure.CloseLogFile()
	return nil
}

// Run starts the server and blocks until SIGINT or SIGTERM
func (a *Application) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return a.Start(ctx)
}
