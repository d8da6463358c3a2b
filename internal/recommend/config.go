// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package recommend

import (
	"fmt"
	"time"
)

const (
	// maxSearchKeywords bounds the concurrent keyword searches per
	// food-type recommendation.
	maxSearchKeywords = 3

	// maxConditionKeywords bounds the concurrent keyword searches per
	// quick condition recommendation.
	maxConditionKeywords = 2
)

// Config controls engine behavior. Use DefaultConfig as a starting point.
type Config struct {
	// SearchSize is the page size requested per keyword search.
	SearchSize int

	// CandidateLimit caps the merged candidate list before enrichment.
	CandidateLimit int

	// CacheEnabled turns on response caching keyed by the full request.
	CacheEnabled bool

	// CacheTTL is how long cached responses stay valid.
	CacheTTL time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		SearchSize:     15,
		CandidateLimit: 10,
		CacheEnabled:   false,
		CacheTTL:       5 * time.Minute,
	}
}

// Validate checks config invariants.
func (c *Config) Validate() error {
	if c.SearchSize < 1 || c.SearchSize > 45 {
		return fmt.Errorf("search size must be between 1 and 45, got %d", c.SearchSize)
	}
	if c.CandidateLimit < 1 {
		return fmt.Errorf("candidate limit must be positive, got %d", c.CandidateLimit)
	}
	if c.CacheEnabled && c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive when caching is enabled, got %s", c.CacheTTL)
	}
	return nil
}
