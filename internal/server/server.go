// Package server exposes plans, groupings, and the dependency graph over
// HTTP. The surface is read-only: every response is recomputed from the
// dependency map loaded at startup, nothing is cached between requests.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/runstack/runstack/pkg/depgraph"
	"github.com/runstack/runstack/pkg/render"
	"github.com/runstack/runstack/pkg/report"
)

// Server serves planning queries over a fixed dependency map.
type Server struct {
	deps   depgraph.Map
	logger *log.Logger
}

// New creates a Server for the given dependency map. The map must not be
// mutated after this call.
func New(deps depgraph.Map, logger *log.Logger) *Server {
	return &Server{deps: deps, logger: logger}
}

// Handler returns the HTTP routes:
//
//	GET /healthz        liveness probe
//	GET /api/plan       global execution order; ?target= restricts to one unit
//	GET /api/groups     fan-in grouping, same ?target= semantics
//	GET /api/graph.dot  Graphviz DOT of the dependency graph
//
// An unknown target yields 404, a dependency cycle 409.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/plan", s.handlePlan)
		r.Get("/groups", s.handleGroups)
		r.Get("/graph.dot", s.handleGraphDOT)
	})
	return r
}

// planFor computes the execution order, global or target-rooted.
func (s *Server) planFor(target string) ([]string, error) {
	if target == "" {
		return depgraph.Build(s.deps).Sort()
	}
	return depgraph.PlanFor(s.deps, target)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	order, err := s.planFor(target)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Target string   `json:"target,omitempty"`
		Order  []string `json:"order"`
	}{Target: target, Order: order})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	order, err := s.planFor(target)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := report.ByFanIn(order, s.deps).WriteJSON(w); err != nil {
		s.logger.Errorf("write groups: %v", err)
	}
}

func (s *Server) handleGraphDOT(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	if _, err := w.Write([]byte(render.ToDOT(s.deps))); err != nil {
		s.logger.Errorf("write graph: %v", err)
	}
}

// writeDomainError maps engine errors to HTTP statuses: unknown target is a
// client addressing problem (404), a cycle means the loaded declarations can
// never produce an order (409).
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, depgraph.ErrUnknownTarget):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, depgraph.ErrCycle):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Errorf("plan: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// requestLogger logs method, path, status, and latency per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	})
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the standard error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
