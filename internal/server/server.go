// Package server exposes resolved dependency graphs over an HTTP API.
//
// The server answers from a single APKINDEX loaded at startup. Every graph
// is resolved on demand; the index itself is immutable, so responses are
// deterministic for the lifetime of the process.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/apkgraph/apkgraph/pkg/deps"
	"github.com/apkgraph/apkgraph/pkg/deps/apkindex"
	"github.com/apkgraph/apkgraph/pkg/errors"
	pkgio "github.com/apkgraph/apkgraph/pkg/io"
	"github.com/apkgraph/apkgraph/pkg/render/nodelink"
)

// shutdownTimeout bounds graceful shutdown after the context is cancelled.
const shutdownTimeout = 5 * time.Second

// Server serves dependency graphs resolved against a fixed index.
type Server struct {
	idx    *apkindex.Index
	logger *log.Logger
	router chi.Router
}

// New creates a server answering from idx.
func New(idx *apkindex.Index, logger *log.Logger) *Server {
	s := &Server{idx: idx, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/packages", s.handlePackages)
		r.Get("/graph/{pkg}", s.handleGraph)
		r.Get("/graph/{pkg}/svg", s.handleGraphSVG)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// logRequests logs each request with method, path, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "packages": s.idx.Len()})
}

// handlePackages answers GET /api/packages?q=term with matching package names.
func (s *Server) handlePackages(w http.ResponseWriter, r *http.Request) {
	matches := s.idx.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{"packages": matches, "count": len(matches)})
}

// handleGraph answers GET /api/graph/{pkg} with the resolved graph as JSON.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resolve(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if res.Partial {
		w.Header().Set("X-Graph-Partial", "true")
	}
	if err := pkgio.WriteJSON(res.Graph, w); err != nil {
		s.logger.Errorf("write graph: %v", err)
	}
}

// handleGraphSVG answers GET /api/graph/{pkg}/svg with an in-process SVG rendering.
func (s *Server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resolve(w, r)
	if !ok {
		return
	}
	svg, err := nodelink.RenderSVG(nodelink.ToDOT(res.Graph, nodelink.Options{}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// resolve runs the resolver for the {pkg} URL parameter and writes the error
// response itself when resolution fails.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (*deps.Result, bool) {
	pkg := chi.URLParam(r, "pkg")

	res, err := deps.Resolve(r.Context(), s.idx, pkg, deps.Options{
		Logger: func(msg string, args ...any) { s.logger.Warnf(msg, args...) },
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return nil, false
	}
	return res, true
}

// statusFor maps resolver error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodePackageNotFound, errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidPackage, errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
