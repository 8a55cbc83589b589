package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bobmcallan/folio/internal/common"
)

// registerRoutes sets up all REST API routes.
func (s *Server) registerRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// System
		r.Get("/health", s.handleHealth)
		r.Get("/version", s.handleVersion)

		// Portfolios
		r.Route("/portfolios", func(r chi.Router) {
			r.Get("/", s.handlePortfolioList)
			r.Post("/", s.handlePortfolioCreate)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/performance", s.handlePortfolioPerformance)
				r.Get("/chart.png", s.handlePortfolioChart)
				r.Post("/snapshots", s.handleSnapshotUpsert)
				r.Put("/snapshots/{date}", s.handleSnapshotUpdate)
			})
		})
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteErrorWithCode(w, http.StatusNotFound, "Route not found", CodeNotFound)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, common.GetVersionInfo())
}
