package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"order-intake/internal/config"
	"order-intake/internal/middleware"
	"order-intake/internal/order/handler"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, app *handler.App) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: requestID -> logging -> recover -> cors -> limit
	// (recover внутри logging, иначе паника не попадёт в access-лог)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handler.Health(app))

	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/validate", handler.ValidateOrder(app, logger))
		r.Post("/validate/batch", handler.ValidateBatch(app, logger))
		r.Post("/recommend", handler.RecommendOrder(app, logger))
		r.Post("/match", handler.MatchReference(app))
	})

	r.Get("/catalog/{code}", handler.GetCatalogEntry(app))
	r.Post("/catalog/reload", handler.ReloadCatalog(app, logger))

	return r
}
