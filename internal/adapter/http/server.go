// Package http serves the visualization page, the SVG views, and the
// grouping API, plus the operational endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/render"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/state"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SampleSource supplies the currently loaded anomaly samples.
type SampleSource interface {
	Samples() []domain.Sample
}

// Server exposes the visualization routes plus health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	store      *state.Store
	samples    SampleSource
	chart      *render.ChartRenderer
	latmap     *render.MapRenderer
	logger     *slog.Logger
}

// NewServer wires all routes onto a stdlib mux.
func NewServer(addr string, store *state.Store, samples SampleSource, ready ReadinessChecker,
	chart *render.ChartRenderer, latmap *render.MapRenderer, logger *slog.Logger) *Server {

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:   store,
		samples: samples,
		chart:   chart,
		latmap:  latmap,
		logger:  logger,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /chart.svg", s.handleChart)
	mux.HandleFunc("GET /map.svg", s.handleMap)

	mux.HandleFunc("GET /api/grouping", s.handleGrouping)
	mux.HandleFunc("POST /api/bands/{id}/cycle", s.handleCycle)
	mux.HandleFunc("POST /api/grouping/clear", s.handleClear)
	mux.HandleFunc("POST /api/grouping/defaults", s.handleDefaults)
	mux.HandleFunc("GET /api/series", s.handleSeries)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	g := s.store.Grouping()
	series := domain.ComputeGroupSeries(s.samples.Samples(), g)

	svg, err := s.chart.Render(series, domain.PresetAnnotations(g))
	if err != nil {
		s.logger.Error("chart render failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "chart render failed"})
		return
	}
	writeSVG(w, svg)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	svg, err := s.latmap.Render(r.Context(), s.store.Grouping())
	if err != nil {
		s.logger.Error("map render failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "map render failed"})
		return
	}
	writeSVG(w, svg)
}

func (s *Server) handleGrouping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newGroupingResponse(s.store.Grouping()))
}

func (s *Server) handleCycle(w http.ResponseWriter, r *http.Request) {
	band, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "band id must be an integer"})
		return
	}

	g, err := s.store.Cycle(r.Context(), band)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, newGroupingResponse(g))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newGroupingResponse(s.store.Clear(r.Context())))
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newGroupingResponse(s.store.Defaults(r.Context())))
}

func (s *Server) handleSeries(w http.ResponseWriter, _ *http.Request) {
	g := s.store.Grouping()
	series := domain.ComputeGroupSeries(s.samples.Samples(), g)

	writeJSON(w, http.StatusOK, seriesResponse{
		Series:      series,
		Annotations: domain.PresetAnnotations(g),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// API response shapes.

type groupInfo struct {
	ID    domain.GroupID `json:"id"`
	Bands []int          `json:"bands"`
	Color string         `json:"color"`
}

type groupingResponse struct {
	Assignments [domain.NumBands]domain.GroupID `json:"assignments"`
	Groups      []groupInfo                     `json:"groups"`
	IsDefault   bool                            `json:"is_default"`
}

func newGroupingResponse(g domain.Grouping) groupingResponse {
	resp := groupingResponse{
		Assignments: g,
		IsDefault:   g.IsDefault(),
	}
	for _, id := range g.NonEmptyGroups() {
		resp.Groups = append(resp.Groups, groupInfo{
			ID:    id,
			Bands: g.BandsIn(id),
			Color: render.GroupColorHex(id),
		})
	}
	return resp
}

type seriesResponse struct {
	Series      []domain.GroupSeries `json:"series"`
	Annotations []domain.Annotation  `json:"annotations,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(svg) //nolint:errcheck // best-effort response
}
