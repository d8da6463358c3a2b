// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gastrograph/gastrograph/internal/config"
	"github.com/gastrograph/gastrograph/internal/middleware"
)

// Router assembles the HTTP routing table.
type Router struct {
	handlers *Handlers
	security *config.SecurityConfig
}

// NewRouter creates a router around the given handler set.
func NewRouter(handlers *Handlers, security *config.SecurityConfig) *Router {
	return &Router{
		handlers: handlers,
		security: security,
	}
}

// Setup configures all routes and returns the root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.security.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Health endpoints stay outside the API rate limit so monitoring
	// probes never get throttled together with clients.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, router.security.RateLimitWindow))
		r.Get("/", router.handlers.Health)
		r.Get("/live", router.handlers.HealthLive)
		r.Get("/ready", router.handlers.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.Limit(
			router.security.RateLimitReqs,
			router.security.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				WriteError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, "rate limit exceeded")
			}),
		))
		r.Use(middleware.PrometheusMetrics)

		r.Post("/recommend", router.handlers.Recommend)
		r.Post("/recommend/quick", router.handlers.QuickRecommend)
		r.Post("/recommend/condition", router.handlers.RecommendByCondition)
		r.Get("/conditions", router.handlers.Conditions)
		r.Get("/restaurants", router.handlers.Restaurants)
		r.Get("/stats", router.handlers.Stats)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
