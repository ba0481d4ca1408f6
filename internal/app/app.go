// Package app assembles one running instance of the students site: it
// owns the store, the renderer, the metrics registry and the router, and
// hands them to the handlers explicitly. Nothing is global, so tests can
// build as many independent instances as they like.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aanand-mishra/students-web/internal/config"
	"github.com/aanand-mishra/students-web/internal/http/handlers/health"
	"github.com/aanand-mishra/students-web/internal/http/handlers/student"
	"github.com/aanand-mishra/students-web/internal/http/middleware"
	"github.com/aanand-mishra/students-web/internal/http/render"
	"github.com/aanand-mishra/students-web/internal/storage"
	"github.com/aanand-mishra/students-web/internal/storage/gormdb"
	"github.com/aanand-mishra/students-web/internal/storage/memory"
	"github.com/aanand-mishra/students-web/internal/storage/sqlite"
)

type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Storage  storage.Storage
	Registry *prometheus.Registry

	handler http.Handler
}

// New opens the configured store and builds the router.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := OpenStorage(cfg, log)
	if err != nil {
		return nil, err
	}

	a, err := NewWithStorage(cfg, log, store)
	if err != nil {
		store.Close()
		return nil, err
	}
	return a, nil
}

// NewWithStorage builds an App around an already opened store. The App
// takes ownership: Close closes the store.
func NewWithStorage(cfg *config.Config, log *slog.Logger, store storage.Storage) (*App, error) {
	view, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a := &App{
		Config:   cfg,
		Log:      log,
		Storage:  store,
		Registry: reg,
	}
	a.handler = a.routes(view, middleware.NewMetrics(reg))

	return a, nil
}

// OpenStorage picks the backend named by cfg.StorageDriver.
func OpenStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite, "":
		s, err := sqlite.New(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverGORM:
		s, err := gormdb.New(cfg.StoragePath, log, cfg.Debug)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("app.OpenStorage: unknown driver %q", cfg.StorageDriver)
	}
}

// Route table:
//
//	GET  /              list all students + create form
//	POST /              create a student, redirect to /
//	GET  /home          static greeting
//	POST /delete/{id}   delete a student, redirect to /
//	GET  /update/{id}   edit form
//	POST /update/{id}   update a student, redirect to /
//	GET  /healthz       store liveness (JSON)
//	GET  /metrics       Prometheus exposition
//
// "/{$}" matches only the root, so unknown paths fall through to 404.
func (a *App) routes(view *render.Renderer, metrics *middleware.Metrics) http.Handler {
	deps := student.Deps{Storage: a.Storage, View: view, Log: a.Log}

	router := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		router.Handle(pattern, metrics.Instrument(pattern, h))
	}

	handle("GET /{$}", student.List(deps))
	handle("POST /{$}", student.Create(deps))
	handle("GET /home", student.Home())
	handle("POST /delete/{id}", student.Delete(deps))
	handle("GET /update/{id}", student.EditForm(deps))
	handle("POST /update/{id}", student.Update(deps))
	handle("GET /healthz", health.Check(a.Storage, a.Log))
	router.Handle("GET /metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	return middleware.Chain(router,
		middleware.RequestID,
		middleware.Logger(a.Log),
		middleware.Recoverer(a.Log),
	)
}

// Handler is the root http.Handler of this instance.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Server returns an *http.Server for this instance using the configured
// address and timeouts.
func (a *App) Server() *http.Server {
	return &http.Server{
		Addr:         a.Config.HTTPServer.Addr,
		Handler:      a.handler,
		ReadTimeout:  a.Config.HTTPServer.ReadTimeout,
		WriteTimeout: a.Config.HTTPServer.WriteTimeout,
		IdleTimeout:  a.Config.HTTPServer.IdleTimeout,
	}
}

// Close releases the store.
func (a *App) Close() error {
	return a.Storage.Close()
}
