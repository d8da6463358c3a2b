// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Note: this package has no dependencies on other internal packages. The
// place provider and the HTTP layer plug in through the collaborator
// interfaces, which keeps the engine testable with in-memory fakes.

// ErrUnknownConditionKey is returned by QuickRecommend for condition keys
// missing from the keyword catalog.
var ErrUnknownConditionKey = errors.New("unknown condition key")

// maxCacheEntries caps the in-memory response cache.
const maxCacheEntries = 256

// Engine runs condition-based recommendations. It is safe for concurrent
// use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	searcher PlaceSearcher
	reviews  ReviewFetcher
	images   ImageFetcher

	cache   map[string]cacheEntry
	cacheMu sync.RWMutex

	requestCount  atomic.Int64
	fallbackCount atomic.Int64
	emptyCount    atomic.Int64
	cacheHits     atomic.Int64
}

type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// Stats is a point-in-time snapshot of engine counters.
type Stats struct {
	Requests  int64 `json:"requests"`
	Fallbacks int64 `json:"fallbacks"`
	Empty     int64 `json:"empty_results"`
	CacheHits int64 `json:"cache_hits"`
}

// NewEngine builds an engine. All three collaborators are required.
func NewEngine(cfg *Config, searcher PlaceSearcher, reviews ReviewFetcher, images ImageFetcher, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if searcher == nil {
		return nil, errors.New("place searcher is required")
	}
	if reviews == nil {
		return nil, errors.New("review fetcher is required")
	}
	if images == nil {
		return nil, errors.New("image fetcher is required")
	}
	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend_engine").Logger(),
		searcher: searcher,
		reviews:  reviews,
		images:   images,
		cache:    make(map[string]cacheEntry),
	}, nil
}

// Recommend maps the request's condition vector to a food type, searches
// and enriches candidate restaurants, and returns the ranked response.
//
// When the primary food type yields zero restaurants and a secondary type
// exists, the search runs once more with the secondary type's keywords.
// The response always reports the primary type regardless of which search
// produced the restaurants.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	e.requestCount.Add(1)

	if e.config.CacheEnabled {
		if resp, ok := e.cacheGet(cacheKey(req)); ok {
			e.cacheHits.Add(1)
			return resp, nil
		}
	}

	scores := ComputeFoodTypeScores(req.Condition)
	primary, secondary := SelectFoodTypes(scores)

	q := GeoQuery{Lat: req.Lat, Lng: req.Lng, Radius: req.Radius, Size: e.config.SearchSize}
	scored := e.enrich(ctx, e.searchFoodType(ctx, primary, q))

	fellBack := false
	if len(scored) == 0 && secondary != nil {
		fellBack = true
		e.fallbackCount.Add(1)
		e.logger.Info().
			Str("primary", string(primary)).
			Str("secondary", string(*secondary)).
			Msg("No results for primary food type, retrying with secondary")
		scored = e.enrich(ctx, e.searchFoodType(ctx, *secondary, q))
	}
	if len(scored) == 0 {
		e.emptyCount.Add(1)
	}

	resp := &Response{
		FoodType:       primary,
		FoodTypeLabel:  Label(primary),
		FoodTypeReason: Reason(primary),
		ConditionSummary: map[string]bool{
			"spicy": req.Condition.Spicy,
			"warm":  req.Condition.Warm,
			"light": req.Condition.Light,
			"soup":  req.Condition.Soup,
		},
		Restaurants:       scored,
		TotalCount:        len(scored),
		SecondaryFoodType: secondary,
		FallbackUsed:      fellBack,
	}

	if e.config.CacheEnabled {
		e.cacheSet(cacheKey(req), resp)
	}
	return resp, nil
}

// QuickRecommend searches and enriches restaurants for a named condition
// key, skipping the food-type classification entirely.
func (e *Engine) QuickRecommend(ctx context.Context, key string, lat, lng float64, radius int) ([]ScoredRestaurant, error) {
	keywords := ConditionKeywords(key)
	if keywords == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConditionKey, key)
	}
	if len(keywords) > maxConditionKeywords {
		keywords = keywords[:maxConditionKeywords]
	}

	e.requestCount.Add(1)
	q := GeoQuery{Lat: lat, Lng: lng, Radius: radius, Size: e.config.SearchSize}
	scored := e.enrich(ctx, e.searchKeywords(ctx, keywords, q))
	if len(scored) == 0 {
		e.emptyCount.Add(1)
	}
	return scored, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:  e.requestCount.Load(),
		Fallbacks: e.fallbackCount.Load(),
		Empty:     e.emptyCount.Load(),
		CacheHits: e.cacheHits.Load(),
	}
}

func cacheKey(req Request) string {
	return fmt.Sprintf("%t:%t:%t:%t:%.5f:%.5f:%d",
		req.Condition.Spicy, req.Condition.Warm, req.Condition.Light, req.Condition.Soup,
		req.Lat, req.Lng, req.Radius)
}

func (e *Engine) cacheGet(key string) (*Response, bool) {
	e.cacheMu.RLock()
	entry, ok := e.cache[key]
	e.cacheMu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.response, true
}

func (e *Engine) cacheSet(key string, resp *Response) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	if len(e.cache) >= maxCacheEntries {
		now := time.Now()
		for k, v := range e.cache {
			if now.After(v.expiresAt) {
				delete(e.cache, k)
			}
		}
		// Still full after expiry sweep: drop an arbitrary entry.
		if len(e.cache) >= maxCacheEntries {
			for k := range e.cache {
				delete(e.cache, k)
				break
			}
		}
	}
	e.cache[key] = cacheEntry{response: resp, expiresAt: time.Now().Add(e.config.CacheTTL)}
}
