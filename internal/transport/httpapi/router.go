package httpapi

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jkeats/budgetbuddy/internal/transport/httpapi/handler"
	"github.com/jkeats/budgetbuddy/internal/transport/httpapi/middleware"
	"github.com/jkeats/budgetbuddy/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger          *logger.Logger
	AllowedOrigins  []string
	HealthHandler   *handler.HealthHandler
	LedgerHandler   *handler.LedgerHandler
	BalanceHandler  *handler.BalanceHandler
	ReportsHandler  *handler.ReportsHandler
	SettingsHandler *handler.SettingsHandler
	GoalsHandler    *handler.GoalsHandler
	ProfileHandler  *handler.ProfileHandler
}

// New creates a new HTTP router
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // Rate limiting: 100 req/s with burst of 20

	// Health check endpoints
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.LedgerHandler != nil {
			r.Route("/ledgers/{section}", func(r chi.Router) {
				r.Get("/rows", cfg.LedgerHandler.GetRows)
				r.Post("/rows", cfg.LedgerHandler.CreateRow)
				r.Patch("/rows/{id}", cfg.LedgerHandler.UpdateRow)
				r.Delete("/rows/{id}", cfg.LedgerHandler.DeleteRow)
				r.Get("/payees", cfg.LedgerHandler.GetPayees)
			})
		}

		if cfg.BalanceHandler != nil {
			r.Get("/balances", cfg.BalanceHandler.GetBalances)
			r.Get("/balances/reconcile", cfg.BalanceHandler.Reconcile)
			r.Put("/balances/{account}", cfg.BalanceHandler.SetBalance)
		}

		if cfg.ReportsHandler != nil {
			r.Get("/reports/categories", cfg.ReportsHandler.GetCategories)
			r.Get("/reports/overview", cfg.ReportsHandler.GetOverview)
		}

		if cfg.SettingsHandler != nil {
			r.Get("/categories", cfg.SettingsHandler.GetCategories)
			r.Post("/categories", cfg.SettingsHandler.AddCategory)
			r.Delete("/categories/{name}", cfg.SettingsHandler.DeleteCategory)

			r.Get("/accounts", cfg.SettingsHandler.GetAccounts)
			r.Post("/accounts", cfg.SettingsHandler.AddAccount)
			r.Delete("/accounts/{name}", cfg.SettingsHandler.DeleteAccount)
		}

		if cfg.GoalsHandler != nil {
			r.Get("/goals", cfg.GoalsHandler.GetGoals)
			r.Post("/goals", cfg.GoalsHandler.CreateGoal)
			r.Patch("/goals/{id}", cfg.GoalsHandler.UpdateGoal)
			r.Delete("/goals/{id}", cfg.GoalsHandler.DeleteGoal)
			r.Post("/goals/{id}/transfer", cfg.GoalsHandler.Transfer)
		}

		if cfg.ProfileHandler != nil {
			r.Get("/profile", cfg.ProfileHandler.GetProfile)
			r.Put("/profile", cfg.ProfileHandler.UpdateProfile)
			r.Get("/settings/debug", cfg.ProfileHandler.GetDebugSetting)
			r.Put("/settings/debug", cfg.ProfileHandler.UpdateDebugSetting)
		}
	})

	return r
}
