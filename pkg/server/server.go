// Package server exposes layout editing over HTTP.
//
// An operator uploads a spreadsheet, which becomes a session (a working set
// of records identified by a UUID). The session can then be edited field by
// field, recalculated, validated and exported:
//
//	POST   /api/v1/sessions                      upload (multipart "file")
//	GET    /api/v1/sessions/{id}                 working set
//	PATCH  /api/v1/sessions/{id}/fields/{line}   edit one field
//	POST   /api/v1/sessions/{id}/recalculate     recalculate positions
//	GET    /api/v1/sessions/{id}/validation      validation report
//	GET    /api/v1/sessions/{id}/export          ?format=xml|json|line|dot|svg&force=true
//	DELETE /api/v1/sessions/{id}                 discard
//	POST   /api/v1/encode                        one-off fixed-width encoding
//	GET    /healthz                              liveness
//
// Errors are returned as JSON {"code": ..., "message": ...}.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/eventlayout/pkg/observability"
	"github.com/matzehuels/eventlayout/pkg/pipeline"
	"github.com/matzehuels/eventlayout/pkg/session"
)

// Default limits.
const (
	DefaultMaxUpload       = 32 << 20
	DefaultMaxWidth        = 1 << 16
	DefaultCleanupInterval = 10 * time.Minute
	shutdownTimeout        = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Sheet and DataStartRow are passed to the spreadsheet reader unless the
	// upload form overrides them.
	Sheet        string
	DataStartRow int

	// Indent is the XML export indentation.
	Indent string

	// SessionTTL is the lifetime of new sessions (session.DefaultTTL if 0).
	SessionTTL time.Duration

	// MaxUpload bounds the multipart upload size (DefaultMaxUpload if 0).
	MaxUpload int64

	// MaxWidth bounds encode widths and field positions in bytes
	// (DefaultMaxWidth if 0). Every field must end at or before it.
	MaxWidth int
}

// Server is the HTTP API.
type Server struct {
	store  session.Store
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a server. A nil runner gets an uncached runner; a nil logger
// the default logger.
func New(store session.Store, runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = session.DefaultTTL
	}
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = DefaultMaxUpload
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultMaxWidth
	}

	s := &Server{store: store, runner: runner, logger: logger, opts: opts}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/encode", s.handleEncode)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Patch("/fields/{line}", s.handleUpdateField)
				r.Post("/recalculate", s.handleRecalculate)
				r.Get("/validation", s.handleValidation)
				r.Get("/export", s.handleExport)
			})
		})
	})
	return r
}

// observe reports requests to the registered server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired sessions are purged periodically meanwhile.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.cleanupLoop(ctx, DefaultCleanupInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) cleanupLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			}
		}
	}
}
