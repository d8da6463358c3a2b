// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gastrograph/gastrograph/internal/recommend"
)

// StatsSource exposes engine counters for periodic reporting.
type StatsSource interface {
	Stats() recommend.Stats
}

// StatsReporterService periodically logs recommendation engine counters.
// It runs in the background layer of the supervisor tree.
type StatsReporterService struct {
	source   StatsSource
	interval time.Duration
	logger   zerolog.Logger
}

// NewStatsReporterService creates a stats reporter. A non-positive
// interval falls back to one minute.
func NewStatsReporterService(source StatsSource, interval time.Duration, logger zerolog.Logger) *StatsReporterService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StatsReporterService{
		source:   source,
		interval: interval,
		logger:   logger.With().Str("component", "stats_reporter").Logger(),
	}
}

// Serve implements suture.Service.
func (s *StatsReporterService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			stats := s.source.Stats()
			s.logger.Info().
				Int64("requests", stats.Requests).
				Int64("fallbacks", stats.Fallbacks).
				Int64("empty_results", stats.Empty).
				Int64("cache_hits", stats.CacheHits).
				Msg("Recommendation engine stats")
		}
	}
}

// String implements fmt.Stringer for suture log messages.
func (s *StatsReporterService) String() string {
	return "stats-reporter"
}
