package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avramz/luach-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health
//	GET  /api/v1/convert/today
//	GET  /api/v1/convert/range?start=&end=
//	GET  /api/v1/convert/{date}
//	GET  /api/v1/hebrew/{year}/{month}/{day}
//	GET  /api/v1/years?from=&to=
//	GET  /api/v1/years/{year}
//	GET  /api/v1/molad/{year}
//	POST /api/v1/admin/years/cache?from=&to=   (API key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware())

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/convert/today", handlers.ConvertToday)
		r.Get("/convert/range", handlers.ConvertRange)
		r.Get("/convert/{date}", handlers.ConvertDate)
		r.Get("/hebrew/{year}/{month}/{day}", handlers.ConvertHebrew)
		r.Get("/years", handlers.ListYears)
		r.Get("/years/{year}", handlers.GetYear)
		r.Get("/molad/{year}", handlers.GetMolad)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))
			r.Post("/admin/years/cache", handlers.CacheYears)
		})
	})

	return r
}
