// Package server exposes the celestial pipeline over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/litescript/ls-celestial/internal/config"
	"github.com/litescript/ls-celestial/internal/ephem"
	"github.com/litescript/ls-celestial/internal/logging"
)

// Deps are the collaborators the router needs beyond the handler.
type Deps struct {
	Logger   *slog.Logger
	Oracles  *ephem.Set
	Requests RequestObserver
	// Metrics serves the Prometheus endpoint; nil disables it.
	Metrics http.Handler
}

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *BodyHandler, deps Deps) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(logger),
		tracingMiddleware(),
		requestLogger(logger),
	)

	router.GET("/healthz", healthHandler(deps.Oracles))
	if deps.Metrics != nil && cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics))
	}

	limit, stopLimiter := rateLimitMiddleware(cfg.HTTP.RateLimit, logger)
	bodies := router.Group("/",
		metricsMiddleware(deps.Requests),
		errorHandlingMiddleware(logger),
		limit,
	)
	{
		bodies.GET("/:body", handler.Body)
		bodies.POST("/:body", handler.Body)
	}

	srv := &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
	srv.RegisterOnShutdown(stopLimiter)
	return srv
}
