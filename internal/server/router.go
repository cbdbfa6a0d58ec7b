package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"numtools/internal/config"
	"numtools/internal/handlers"
	"numtools/internal/numbers"
	"numtools/internal/observability"
)

func NewRouter(cfg config.Config) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	numbers.RegisterRoutes(r, numbers.NewHandler(cfg.Search, cfg.Gaps))

	return r
}
