package server

import (
	"github.com/go-chi/chi/v5"

	"github.com/adforge/adforge/internal/server/handlers"
)

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes() {
	// Health endpoints
	s.router.Get("/health", handlers.HealthHandler)
	s.router.Get("/health/live", handlers.LivenessHandler)
	s.router.Get("/health/ready", handlers.ReadinessHandler)

	// Version endpoint
	s.router.Get("/version", handlers.VersionHandler)

	// Generation API
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.api.Generate)
		r.Post("/suggest", s.api.Suggest)
		r.Post("/remix", s.api.Remix)
		r.Get("/history", s.api.HistoryList)
		r.Delete("/history", s.api.HistoryClear)
	})
}
