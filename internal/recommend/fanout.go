// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package recommend

import (
	"context"
	"sort"
	"sync"
)

// searchKeywords fans out one place search per keyword, merges the results
// in keyword order with first-seen-wins deduplication by place ID, sorts
// by distance, and caps the list at the candidate limit.
//
// Individual keyword failures are logged and skipped; the merge proceeds
// with whatever succeeded. Results are collected into an indexed slice so
// that the merge order matches the keyword order regardless of which
// search completes first.
func (e *Engine) searchKeywords(ctx context.Context, keywords []string, q GeoQuery) []Place {
	results := make([][]Place, len(keywords))
	errs := make([]error, len(keywords))

	var wg sync.WaitGroup
	for i, kw := range keywords {
		wg.Add(1)
		go func(i int, kw string) {
			defer wg.Done()
			results[i], errs[i] = e.searcher.SearchKeyword(ctx, kw, q)
		}(i, kw)
	}
	wg.Wait()

	seen := make(map[string]bool)
	var merged []Place
	for i := range results {
		if errs[i] != nil {
			e.logger.Warn().
				Err(errs[i]).
				Str("keyword", keywords[i]).
				Msg("Keyword search failed, continuing with remaining keywords")
			continue
		}
		for _, p := range results[i] {
			if p.ID == "" || seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Distance < merged[j].Distance
	})
	if len(merged) > e.config.CandidateLimit {
		merged = merged[:e.config.CandidateLimit]
	}
	return merged
}

// searchFoodType searches the place provider using the food type's
// keywords.
func (e *Engine) searchFoodType(ctx context.Context, ft FoodType, q GeoQuery) []Place {
	keywords := Keywords(ft)
	if len(keywords) > maxSearchKeywords {
		keywords = keywords[:maxSearchKeywords]
	}
	return e.searchKeywords(ctx, keywords, q)
}
