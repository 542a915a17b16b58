package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/TradeTrack-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/TradeTrack-Backend/internal/api/middleware"
	"github.com/ndewijer/TradeTrack-Backend/internal/config"
	"github.com/ndewijer/TradeTrack-Backend/internal/service"
)

// Services bundles everything the HTTP layer delegates to.
type Services struct {
	System    *service.SystemService
	Ledger    *service.LedgerService
	Import    *service.ImportService
	Direction *service.DirectionService
	Insight   *service.InsightService
	Backup    *service.BackupService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Everything below works on one user's ledger
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.UserScope(cfg.DefaultUser))

			r.Route("/trades", func(r chi.Router) {
				tradeHandler := handlers.NewTradeHandler(svc.Ledger)
				r.Get("/", tradeHandler.Trades)
				r.Post("/", tradeHandler.CreateTrade)
				r.Delete("/{id}", tradeHandler.DeleteTrade)
			})

			r.Route("/accounts", func(r chi.Router) {
				accountHandler := handlers.NewAccountHandler(svc.Ledger)
				r.Get("/", accountHandler.Accounts)
				r.Post("/", accountHandler.CreateAccount)
				r.Delete("/{id}", accountHandler.DeleteAccount)
			})

			r.Get("/dashboard", handlers.NewDashboardHandler(svc.Ledger).Dashboard)

			r.Route("/imports", func(r chi.Router) {
				importHandler := handlers.NewImportHandler(svc.Import, cfg.Import.MaxUploadBytes)
				r.Post("/report", importHandler.ImportReport)
				r.Post("/images", importHandler.ImportImages)

				r.Route("/{id}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateULIDMiddleware)
					r.Get("/", importHandler.GetPreview)
					r.Post("/confirm", importHandler.ConfirmImport)
					r.Delete("/", importHandler.DiscardImport)
				})
			})

			r.Post("/insights", handlers.NewInsightHandler(svc.Insight).Insights)

			r.Route("/directions", func(r chi.Router) {
				directionHandler := handlers.NewDirectionHandler(svc.Direction)
				r.Get("/", directionHandler.Directions)
				r.Post("/", directionHandler.AnalyzeDirection)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Put("/outcome", directionHandler.UpdateOutcome)
					r.Delete("/", directionHandler.DeleteDirection)
				})
			})

			r.Route("/backup", func(r chi.Router) {
				backupHandler := handlers.NewBackupHandler(svc.Backup, cfg.Import.MaxUploadBytes)
				r.Get("/", backupHandler.Export)
				r.Post("/restore", backupHandler.Restore)
			})
		})
	})

	return r
}
