// Package server exposes the settings computation and preset storage over
// HTTP, so renderer pipelines can query camera settings without shelling out
// to the CLI.
//
// # Endpoints
//
//	GET    /healthz                  liveness check
//	POST   /v1/settings              compute settings for posted dimensions
//	GET    /v1/presets               list presets
//	POST   /v1/presets               create a preset
//	GET    /v1/presets/{id}          fetch a preset
//	DELETE /v1/presets/{id}          delete a preset
//	GET    /v1/presets/{id}/settings compute settings for a stored preset
//
// Computation is synchronous and stateless; only preset inputs are stored.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tilecraft/isocam/pkg/blender"
	"github.com/tilecraft/isocam/pkg/preset"
)

// Server handles HTTP requests for settings computation and presets.
type Server struct {
	store  preset.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by the given preset store.
// If logger is nil, the default logger is used.
func New(store preset.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/settings", s.handleComputeSettings)
		r.Route("/presets", func(r chi.Router) {
			r.Get("/", s.handleListPresets)
			r.Post("/", s.handleCreatePreset)
			r.Get("/{id}", s.handleGetPreset)
			r.Delete("/{id}", s.handleDeletePreset)
			r.Get("/{id}/settings", s.handlePresetSettings)
		})
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// logRequests logs each request with method, path, status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleComputeSettings computes settings for the posted dimensions.
func (s *Server) handleComputeSettings(w http.ResponseWriter, r *http.Request) {
	var dims blender.Dimensions
	if err := json.NewDecoder(r.Body).Decode(&dims); err != nil {
		writeError(w, http.StatusBadRequest, "invalid dimensions payload")
		return
	}
	writeJSON(w, http.StatusOK, blender.Compute(clamp(dims)))
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.List(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	if all == nil {
		all = []*preset.Preset{}
	}
	writeJSON(w, http.StatusOK, all)
}

// createPresetRequest is the payload for POST /v1/presets.
type createPresetRequest struct {
	Name       string             `json:"name"`
	Dimensions blender.Dimensions `json:"dimensions"`
}

func (s *Server) handleCreatePreset(w http.ResponseWriter, r *http.Request) {
	var req createPresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid preset payload")
		return
	}
	p, err := preset.New(req.Name, clamp(req.Dimensions))
	if errors.Is(err, preset.ErrInvalidName) {
		writeError(w, http.StatusBadRequest, "preset name must not be empty")
		return
	}
	if err != nil {
		s.storeError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), p); err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePresetSettings recomputes settings from a stored preset's inputs.
func (s *Server) handlePresetSettings(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blender.Compute(p.Dimensions))
}

// storeError maps store errors onto HTTP status codes.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, preset.ErrNotFound) {
		writeError(w, http.StatusNotFound, "preset not found")
		return
	}
	s.logger.Error("preset store failure", "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// clamp coerces out-of-domain values to zero, mirroring the text-input
// coercion the interactive collaborators apply. The core itself performs no
// validation.
func clamp(d blender.Dimensions) blender.Dimensions {
	if d.TileSize < 0 {
		d.TileSize = 0
	}
	if d.XTiles < 0 {
		d.XTiles = 0
	}
	if d.YTiles < 0 {
		d.YTiles = 0
	}
	if d.ZTiles < 0 {
		d.ZTiles = 0
	}
	return d
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
