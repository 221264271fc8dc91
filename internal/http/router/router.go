package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/centinela-seguridad/cpq-api/internal/auth"
	"github.com/centinela-seguridad/cpq-api/internal/config"
	"github.com/centinela-seguridad/cpq-api/internal/database"
	"github.com/centinela-seguridad/cpq-api/internal/http/handler"
	"github.com/centinela-seguridad/cpq-api/internal/http/middleware"

	_ "github.com/centinela-seguridad/cpq-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	authHandler      *handler.AuthHandler
	clientHandler    *handler.ClientHandler
	catalogHandler   *handler.CatalogHandler
	quoteHandler     *handler.QuoteHandler
	quoteCostHandler *handler.QuoteCostHandler
	positionHandler  *handler.PositionHandler
	settingsHandler  *handler.SettingsHandler
	fileHandler      *handler.FileHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	clientHandler *handler.ClientHandler,
	catalogHandler *handler.CatalogHandler,
	quoteHandler *handler.QuoteHandler,
	quoteCostHandler *handler.QuoteCostHandler,
	positionHandler *handler.PositionHandler,
	settingsHandler *handler.SettingsHandler,
	fileHandler *handler.FileHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		authHandler:      authHandler,
		clientHandler:    clientHandler,
		catalogHandler:   catalogHandler,
		quoteHandler:     quoteHandler,
		quoteCostHandler: quoteCostHandler,
		positionHandler:  positionHandler,
		settingsHandler:  settingsHandler,
		fileHandler:      fileHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)

		// Auth
		r.Get("/auth/me", rt.authHandler.Me)

		// Clients
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", rt.clientHandler.List)
			r.Get("/{id}", rt.clientHandler.Get)
			r.Get("/{id}/activities", rt.clientHandler.ListActivities)

			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireEditor)
				r.Post("/", rt.clientHandler.Create)
				r.Put("/{id}", rt.clientHandler.Update)
				r.Delete("/{id}", rt.clientHandler.Delete)
			})
		})

		// Catalog
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", rt.catalogHandler.List)
			r.Get("/exchange-rates/{code}", rt.catalogHandler.GetExchangeRate)
			r.Get("/{id}", rt.catalogHandler.Get)

			// Catalog management is admin-only
			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Post("/", rt.catalogHandler.Create)
				r.Post("/sync", rt.catalogHandler.SyncPrices)
				r.Put("/{id}", rt.catalogHandler.Update)
				r.Delete("/{id}", rt.catalogHandler.Delete)
			})
		})

		// Quotes
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", rt.quoteHandler.List)
			r.Get("/{id}", rt.quoteHandler.Get)
			r.Get("/{id}/detail", rt.quoteHandler.GetDetail)
			r.Get("/{id}/summary", rt.quoteHandler.GetSummary)
			r.Get("/{id}/allocation", rt.quoteHandler.GetAllocation)
			r.Get("/{id}/activities", rt.quoteHandler.ListActivities)

			// Cost inputs (read)
			r.Get("/{id}/cost-items", rt.quoteCostHandler.ListCostItems)
			r.Get("/{id}/uniforms", rt.quoteCostHandler.ListUniforms)
			r.Get("/{id}/exams", rt.quoteCostHandler.ListExams)
			r.Get("/{id}/meals", rt.quoteCostHandler.ListMeals)
			r.Get("/{id}/vehicles", rt.quoteCostHandler.ListVehicles)
			r.Get("/{id}/infrastructure", rt.quoteCostHandler.ListInfrastructure)
			r.Get("/{id}/parameters", rt.quoteCostHandler.GetParameters)
			r.Get("/{id}/positions", rt.positionHandler.List)
			r.Get("/{id}/files", rt.fileHandler.List)
			r.Get("/{id}/files/{fileId}/download", rt.fileHandler.Download)

			// Mutations require edit rights
			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireEditor)

				r.Post("/", rt.quoteHandler.Create)
				r.Put("/{id}", rt.quoteHandler.Update)
				r.Delete("/{id}", rt.quoteHandler.Delete)

				// Lifecycle
				r.Post("/{id}/send", rt.quoteHandler.Send)
				r.Post("/{id}/win", rt.quoteHandler.Win)
				r.Post("/{id}/lose", rt.quoteHandler.Lose)
				r.Post("/{id}/reopen", rt.quoteHandler.Reopen)
				r.Post("/{id}/recalculate", rt.quoteHandler.Recalculate)

				// Cost inputs
				r.Post("/{id}/cost-items", rt.quoteCostHandler.UpsertCostItem)
				r.Post("/{id}/cost-items/{itemId}/toggle", rt.quoteCostHandler.ToggleCostItem)
				r.Delete("/{id}/cost-items/{itemId}", rt.quoteCostHandler.DeleteCostItem)

				r.Post("/{id}/uniforms", rt.quoteCostHandler.AddUniform)
				r.Put("/{id}/uniforms/{itemId}", rt.quoteCostHandler.UpdateUniform)
				r.Delete("/{id}/uniforms/{itemId}", rt.quoteCostHandler.DeleteUniform)

				r.Post("/{id}/exams", rt.quoteCostHandler.AddExam)
				r.Put("/{id}/exams/{itemId}", rt.quoteCostHandler.UpdateExam)
				r.Delete("/{id}/exams/{itemId}", rt.quoteCostHandler.DeleteExam)

				r.Post("/{id}/meals", rt.quoteCostHandler.AddMeal)
				r.Put("/{id}/meals/{itemId}", rt.quoteCostHandler.UpdateMeal)
				r.Delete("/{id}/meals/{itemId}", rt.quoteCostHandler.DeleteMeal)

				r.Post("/{id}/vehicles", rt.quoteCostHandler.AddVehicle)
				r.Put("/{id}/vehicles/{itemId}", rt.quoteCostHandler.UpdateVehicle)
				r.Delete("/{id}/vehicles/{itemId}", rt.quoteCostHandler.DeleteVehicle)

				r.Post("/{id}/infrastructure", rt.quoteCostHandler.AddInfrastructure)
				r.Put("/{id}/infrastructure/{itemId}", rt.quoteCostHandler.UpdateInfrastructure)
				r.Delete("/{id}/infrastructure/{itemId}", rt.quoteCostHandler.DeleteInfrastructure)

				r.Put("/{id}/parameters", rt.quoteCostHandler.UpdateParameters)

				// Positions
				r.Post("/{id}/positions", rt.positionHandler.Create)
				r.Put("/{id}/positions/{positionId}", rt.positionHandler.Update)
				r.Delete("/{id}/positions/{positionId}", rt.positionHandler.Delete)

				// Files
				r.Post("/{id}/files", rt.fileHandler.Upload)
				r.Delete("/{id}/files/{fileId}", rt.fileHandler.Delete)
			})
		})

		// Global settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", rt.settingsHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Put("/", rt.settingsHandler.Update)
			})
		})
	})

	return r
}
