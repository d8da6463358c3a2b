// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

// Package main is the entry point for the Gastrograph server.
//
// Gastrograph recommends restaurants for how the user feels right now.
// A four-flag condition vector (spicy, warm, light, soup) is classified
// into one of eight food types, nearby restaurants are searched through
// the place-search API, enriched with reviews and images, and ranked.
// A second path scores restaurants from a DuckDB keyword-rule store for
// named condition/detail pairs.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered loading (defaults, YAML, env vars)
//  2. Database: DuckDB keyword-rule store, seeded on first start
//  3. Place client: HTTP client behind a gobreaker circuit breaker
//  4. Engine: condition classification, search fanout, enrichment
//  5. HTTP Server: Chi router under a Suture supervisor tree
//
// # Configuration
//
// Settings load via environment variables (see config package docs),
// an optional config.yaml, and built-in defaults. The place-search API
// key (PLACES_API_KEY) is the only required setting.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, waits for in-flight requests (10s timeout),
// then closes the database.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gastrograph/gastrograph/internal/api"
	"github.com/gastrograph/gastrograph/internal/config"
	"github.com/gastrograph/gastrograph/internal/database"
	"github.com/gastrograph/gastrograph/internal/logging"
	"github.com/gastrograph/gastrograph/internal/places"
	"github.com/gastrograph/gastrograph/internal/recommend"
	"github.com/gastrograph/gastrograph/internal/supervisor"
)

const statsReportInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet, so this uses the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("places_url", cfg.Places.BaseURL).
		Msg("Starting Gastrograph")

	db, err := database.New(&cfg.Database, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	placeClient := places.NewBreakerClient(places.NewClient(&cfg.Places, logging.Logger()))

	engine, err := recommend.NewEngine(
		&recommend.Config{
			SearchSize:     cfg.Places.PageSize,
			CandidateLimit: cfg.Recommend.CandidateLimit,
			CacheEnabled:   cfg.Recommend.CacheEnabled,
			CacheTTL:       cfg.Recommend.CacheTTL,
		},
		placeClient,
		placeClient,
		placeClient,
		logging.Logger(),
	)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handlers := api.NewHandlers(engine, db, cfg, logging.Logger())
	router := api.NewRouter(handlers, &cfg.Security)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog wants an slog logger, bridged from zerolog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	tree.AddBackgroundService(supervisor.NewStatsReporterService(engine, statsReportInterval, logging.Logger()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor finishes.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
