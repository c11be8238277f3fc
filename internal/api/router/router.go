package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pratik-mahalle/cloudspend/internal/api/handlers"
	"github.com/pratik-mahalle/cloudspend/internal/api/middleware"
	"github.com/pratik-mahalle/cloudspend/internal/config"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/metrics"
)

// Deps bundles the handlers the router mounts
type Deps struct {
	Anomalies    *handlers.AnomalyHandler
	Budgets      *handlers.BudgetHandler
	Forecasts    *handlers.ForecastHandler
	Remediations *handlers.RemediationHandler
	Costs        *handlers.CostHandler
	WebSocket    *handlers.WebSocketHandler
}

// New builds the HTTP router
func New(cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", handlers.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth.JWTSecret))

		r.Get("/ws", deps.WebSocket.Serve)

		r.Route("/anomalies", func(r chi.Router) {
			r.Get("/", deps.Anomalies.List)
			r.Patch("/{id}/status", deps.Anomalies.UpdateStatus)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", deps.Budgets.List)
			r.Post("/", deps.Budgets.Create)
		})

		r.Get("/forecasts/latest", deps.Forecasts.Latest)

		r.Route("/remediations", func(r chi.Router) {
			r.Get("/", deps.Remediations.List)
			r.Post("/", deps.Remediations.Propose)
			r.Post("/{id}/approve", deps.Remediations.Approve)
		})

		r.Post("/costs", deps.Costs.Ingest)
	})

	return r
}
