package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studentdash/internal/analytics"
	"studentdash/internal/config"
	"studentdash/internal/dataset"
	"studentdash/internal/handlers"
	"studentdash/internal/handlers/api"
	"studentdash/internal/middleware"
)

// Deps are the shared services the routes are built from.
type Deps struct {
	Store *dataset.Store
	UI    *config.YAMLConfig
	// Fitter draws trendlines; nil disables them.
	Fitter analytics.Fitter
	// DB is pinged by the health check when the dataset comes from postgres.
	DB handlers.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, deps Deps) error {
	authMiddleware := middleware.NewAuthMiddleware(s.Cfg)

	views := handlers.NewViews(deps.Store, deps.UI, deps.Fitter)
	dashboardHandler := handlers.NewDashboardHandler(views, s.Cfg, deps.UI)
	chartHandler := handlers.NewChartHandler(views, deps.UI)
	probeHandler := handlers.NewProbeHandler(deps.Store, deps.DB)
	viewAPI := api.NewViewHandler(views)
	optionsAPI := api.NewOptionsHandler(views)

	// Operational routes, never behind login
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes - only when OIDC is configured
	if s.Cfg.AuthEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg)
		if err != nil {
			return err
		}
		s.App.Get("/login", handlers.LoginPage(s.Cfg))
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else {
		log.Println("OIDC authentication is disabled. Set OIDC_ISSUER to enable.")
	}

	// Dashboard
	s.App.Get("/", authMiddleware.RequireAuth, dashboardHandler.Index)
	s.App.Get("/charts/:id.svg", authMiddleware.RequireAuth, chartHandler.Render)

	// JSON API
	s.App.Get("/api/view", authMiddleware.RequireAuth, viewAPI.Get)
	s.App.Get("/api/records", authMiddleware.RequireAuth, viewAPI.Records)
	s.App.Get("/api/options", authMiddleware.RequireAuth, optionsAPI.Get)

	return nil
}
