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

// enrich fetches review summaries and images for the candidates, computes
// each recommendation score, and sorts the results by score descending,
// then rating descending, then distance ascending.
//
// Review fetches run one goroutine per place alongside a single batched
// image fetch. A failed review fetch leaves that place at rating 0.0; a
// failed image fetch leaves the search result's image URL in place. Either
// failure degrades the result rather than aborting it.
func (e *Engine) enrich(ctx context.Context, places []Place) []ScoredRestaurant {
	if len(places) == 0 {
		return nil
	}

	placeIDs := make([]string, len(places))
	for i, p := range places {
		placeIDs[i] = p.ID
	}

	reviews := make([]ReviewSummary, len(places))
	reviewErrs := make([]error, len(places))
	var imageMap map[string]string
	var imageErr error

	var wg sync.WaitGroup
	for i, pid := range placeIDs {
		wg.Add(1)
		go func(i int, pid string) {
			defer wg.Done()
			reviews[i], reviewErrs[i] = e.reviews.ReviewsFor(ctx, pid)
		}(i, pid)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		imageMap, imageErr = e.images.ImagesFor(ctx, placeIDs)
	}()
	wg.Wait()

	if imageErr != nil {
		e.logger.Warn().Err(imageErr).Msg("Image batch fetch failed, using search result images")
	}

	scored := make([]ScoredRestaurant, 0, len(places))
	for i, p := range places {
		rating := 0.0
		if reviewErrs[i] == nil {
			rating = reviews[i].AvgRating
		} else {
			e.logger.Debug().
				Err(reviewErrs[i]).
				Str("place_id", p.ID).
				Msg("Review fetch failed, defaulting rating to 0")
		}

		imageURL := p.ImageURL
		if url, ok := imageMap[p.ID]; ok && url != "" {
			imageURL = url
		}

		scored = append(scored, ScoredRestaurant{
			ID:                  p.ID,
			Name:                p.Name,
			Category:            p.Category,
			FullCategory:        p.FullCategory,
			Address:             p.Address,
			Phone:               p.Phone,
			PlaceURL:            p.PlaceURL,
			ImageURL:            imageURL,
			Lat:                 p.Lat,
			Lng:                 p.Lng,
			Distance:            p.Distance,
			Rating:              rating,
			RecommendationScore: RecommendationScore(rating, p.Distance),
			DistanceWeight:      DistanceWeight(p.Distance),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.RecommendationScore != b.RecommendationScore {
			return a.RecommendationScore > b.RecommendationScore
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Distance < b.Distance
	})
	return scored
}
