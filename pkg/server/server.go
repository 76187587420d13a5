package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vango-dev/vmark/internal/errors"
	"github.com/vango-dev/vmark/pkg/middleware"
)

// Endpoint paths reserved by the preview server. Markdown files shadowed
// by these names are not reachable.
const (
	reloadPath     = "/_vmark/reload"
	stylesheetPath = "/_vmark/style.css"
	metricsPath    = "/metrics"
)

// Server is the markdown preview server. It renders markdown files from a
// root directory on every request, serves other files as static assets,
// and pushes reload messages to connected browsers when files change.
type Server struct {
	config  *Config
	router  chi.Router
	reload  *ReloadHub
	watcher *Watcher

	// HTTP server
	httpServer *http.Server

	// Logger
	logger *slog.Logger
}

// New creates a new preview server with the given configuration.
func New(config *Config) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	} else {
		// Fill in defaults for any unset fields
		defaults := DefaultConfig()
		if config.Root == "" {
			config.Root = defaults.Root
		}
		if config.Host == "" {
			config.Host = defaults.Host
		}
		if config.Port == 0 {
			config.Port = defaults.Port
		}
		if config.Render.Wrapper == "" {
			config.Render.Wrapper = defaults.Render.Wrapper
		}
		if config.Render.Theme == "" {
			config.Render.Theme = defaults.Render.Theme
		}
		if config.Debounce == 0 {
			config.Debounce = defaults.Debounce
		}
		if config.CheckOrigin == nil {
			config.CheckOrigin = defaults.CheckOrigin
		}
		if config.ShutdownTimeout == 0 {
			config.ShutdownTimeout = defaults.ShutdownTimeout
		}
		if config.ReadHeaderTimeout == 0 {
			config.ReadHeaderTimeout = defaults.ReadHeaderTimeout
		}
		if config.IdleTimeout == 0 {
			config.IdleTimeout = defaults.IdleTimeout
		}
	}

	info, err := os.Stat(config.Root)
	if err != nil || !info.IsDir() {
		return nil, errors.New("E202").
			WithDetail("Got " + config.Root).
			Wrap(err)
	}

	logger := slog.Default().With("component", "server")

	s := &Server{
		config: config,
		logger: logger,
	}

	if config.LiveReload {
		s.reload = NewReloadHub(config.CheckOrigin)

		s.watcher, err = NewWatcher(config.Root, config.WatchIgnore, config.Debounce)
		if err != nil {
			return nil, errors.New("E202").Wrap(err)
		}
		s.watcher.OnChange(func(c Change) {
			middleware.RecordWatchEvent()
			if c.Type == ChangeCSS {
				s.reload.NotifyCSS(c.Path)
			} else {
				s.reload.NotifyReload(c.Path)
			}
		})
	}

	s.router = s.routes()

	return s, nil
}

// routes builds the router. Reserved endpoints are registered before the
// catch-all so they always win.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	if s.config.Metrics {
		r.Use(middleware.Prometheus())
		r.Handle(metricsPath, middleware.Handler())
	}

	if s.reload != nil {
		r.Get(reloadPath, s.reload.HandleWebSocket)
	}
	r.Get(stylesheetPath, s.handleStylesheet)
	r.Get("/*", s.handleRequest)
	r.Head("/*", s.handleRequest)

	return r
}

// Handler returns the server's HTTP handler, for mounting the preview
// server inside a larger application.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			return errors.New("E202").Wrap(err)
		}
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Address(),
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		// No global read/write timeouts: reload WebSocket connections
		// stay open for the lifetime of the browser tab.
	}

	// Set up graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Error channel for ListenAndServe
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("preview server starting",
			"address", s.config.Address(),
			"root", s.config.Root,
			"livereload", s.config.LiveReload)
		errCh <- s.httpServer.ListenAndServe()
	}()

	// Wait for shutdown signal or error
	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return errors.New("E201").
				WithDetail("Listen on " + s.config.Address() + " failed").
				Wrap(err)
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	// Create timeout context
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	// Stop the watcher and disconnect reload clients first
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.reload != nil {
		s.reload.Close()
	}

	// Shutdown HTTP server
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
