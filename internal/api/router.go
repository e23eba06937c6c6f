package api

import (
	"net/http"
	"time"

	"cp_stats/internal/api/handler"
	"cp_stats/internal/api/middleware"
	"cp_stats/internal/app/service"
	"cp_stats/internal/common"
	"cp_stats/internal/platform/config"
	"cp_stats/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"
)

func NewRouter(cfg *config.Config, logger log.FieldLogger, statsService *service.StatsService) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(cfg.RequestTimeout))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         int((12 * time.Hour).Seconds()),
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// /api is what the web client calls; /api/v1 is the versioned alias.
	r.Route("/api", func(api chi.Router) {
		statsHandler := handler.NewStatsHandler(statsService)
		statsHandler.RegisterRoutes(api)
		api.Route("/v1", statsHandler.RegisterRoutes)
	})

	return r
}
