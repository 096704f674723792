// Package server exposes the home-page proxy HTTP surface: cached read
// routes for the home widgets, one invalidation hook and the operational
// endpoints.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/recipehub/home-proxy/pkg/cache"
	"github.com/recipehub/home-proxy/pkg/pagination"
	"github.com/recipehub/home-proxy/pkg/upstream"
)

// Options wires the server's collaborators.
type Options struct {
	Cache       *cache.Manager
	Backend     *upstream.Client
	Recommender *upstream.Recommender
	PingMessage string
}

// Server handles the proxy HTTP surface.
type Server struct {
	cache       *cache.Manager
	backend     *upstream.Client
	recommender *upstream.Recommender
	hydrator    *pagination.Hydrator
	pingMessage string
	logger      zerolog.Logger
	router      chi.Router
}

// New creates the server and mounts its routes.
func New(opts Options) *Server {
	s := &Server{
		cache:       opts.Cache,
		backend:     opts.Backend,
		recommender: opts.Recommender,
		hydrator:    pagination.NewHydrator(opts.Backend, pagination.DefaultConfig()),
		pingMessage: opts.PingMessage,
		logger:      log.With().Str("component", "server").Logger(),
	}

	r := chi.NewRouter()
	r.Route("/api/home", func(r chi.Router) {
		r.Get("/featured", s.handleFeatured)
		r.Get("/chefs", s.handleChefs)
		r.Get("/stats", s.handleStats)
		r.Get("/recommended", s.handleRecommended)
		r.Post("/invalidate/chefs", s.handleInvalidateChefs)
	})
	r.Get("/api/ping", s.handlePing)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": s.pingMessage})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// writeJSON marshals v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}

// writeRawJSON writes an already-marshaled payload, e.g. a cache hit.
func writeRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}
