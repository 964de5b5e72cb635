package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keywordmatrix/internal/handlers"
	"keywordmatrix/internal/handlers/api"
	"keywordmatrix/internal/middleware"
	"keywordmatrix/internal/runner"
	"keywordmatrix/internal/store"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, r *runner.Runner, runs store.Store) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(s.Cfg.AuthEnabled())

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(r, runs, s.Cfg)
	probeHandler := handlers.NewProbeHandler(runs)
	classifyAPI := api.NewClassifyHandler(r)
	runAPI := api.NewRunHandler(runs, s.Cfg.TopN)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes - only when OIDC is configured
	if s.Cfg.AuthEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else {
		log.Println("OIDC authentication is disabled. Set OIDC_ISSUER to enable.")
	}

	// Dashboard
	s.App.Get("/", authMiddleware.RequireAuth, dashboardHandler.Index)
	s.App.Post("/upload", authMiddleware.RequireAuth, dashboardHandler.Upload)
	s.App.Get("/runs/:id", authMiddleware.RequireAuth, dashboardHandler.Show)
	s.App.Get("/runs/:id/tables", authMiddleware.RequireAuth, dashboardHandler.Tables)
	s.App.Get("/runs/:id/export.csv", authMiddleware.RequireAuth, dashboardHandler.ExportCSV)
	s.App.Get("/runs/:id/export.xlsx", authMiddleware.RequireAuth, dashboardHandler.ExportXLSX)

	// JSON API
	v1 := s.App.Group("/api/v1", authMiddleware.RequireAPIAuth)
	v1.Post("/classify", classifyAPI.Classify)
	v1.Get("/explain", classifyAPI.Explain)
	v1.Get("/runs/:id", runAPI.Get)
	v1.Get("/runs/:id/stats", runAPI.Stats)
	v1.Get("/runs/:id/top", runAPI.Top)

	return nil
}
