// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package recommend

import "context"

// FoodType identifies one of the eight food categories the engine can
// recommend. Values are stable wire identifiers.
type FoodType string

const (
	SpicySoup   FoodType = "SPICY_SOUP"
	MildSoup    FoodType = "MILD_SOUP"
	MeatHeavy   FoodType = "MEAT_HEAVY"
	LightMeal   FoodType = "LIGHT_MEAL"
	ComfortFood FoodType = "COMFORT_FOOD"
	RefreshMeal FoodType = "REFRESH_MEAL"
	GreasyMeal  FoodType = "GREASY_MEAL"
	QuickMeal   FoodType = "QUICK_MEAL"
)

// Valid reports whether ft is one of the eight known food types.
func (ft FoodType) Valid() bool {
	_, ok := scoreRules[ft]
	return ok
}

// ConditionVector is the four-axis user condition input. Each axis is a
// binary choice; the false side of an axis is itself a condition flag
// (not-spicy means NON_SPICY, not-warm means COOL, and so on).
type ConditionVector struct {
	Spicy bool `json:"spicy"`
	Warm  bool `json:"warm"`
	Light bool `json:"light"`
	Soup  bool `json:"soup"`
}

// Flags expands the vector into its four active condition flags.
func (v ConditionVector) Flags() [4]string {
	var flags [4]string
	if v.Spicy {
		flags[0] = "SPICY"
	} else {
		flags[0] = "NON_SPICY"
	}
	if v.Warm {
		flags[1] = "WARM"
	} else {
		flags[1] = "COOL"
	}
	if v.Light {
		flags[2] = "LIGHT"
	} else {
		flags[2] = "HEAVY"
	}
	if v.Soup {
		flags[3] = "SOUP"
	} else {
		flags[3] = "DRY"
	}
	return flags
}

// Place is a normalized place search result from the place provider.
type Place struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	FullCategory string  `json:"full_category"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	PlaceURL     string  `json:"place_url"`
	ImageURL     string  `json:"image_url,omitempty"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Distance     int     `json:"distance"`
}

// ScoredRestaurant is a place candidate enriched with its rating and the
// computed recommendation score.
type ScoredRestaurant struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	FullCategory        string  `json:"full_category"`
	Address             string  `json:"address"`
	Phone               string  `json:"phone"`
	PlaceURL            string  `json:"place_url"`
	ImageURL            string  `json:"image_url"`
	Lat                 float64 `json:"lat"`
	Lng                 float64 `json:"lng"`
	Distance            int     `json:"distance"`
	Rating              float64 `json:"rating"`
	RecommendationScore float64 `json:"recommendation_score"`
	DistanceWeight      int     `json:"distance_weight"`
}

// ReviewSummary is the aggregate review data for a single place.
type ReviewSummary struct {
	AvgRating   float64 `json:"avg_score"`
	ReviewCount int     `json:"review_count"`
}

// Request is a condition-vector recommendation request. Radius is in
// meters and is validated by the API layer before reaching the engine.
type Request struct {
	Condition ConditionVector
	Lat       float64
	Lng       float64
	Radius    int
}

// Response is the result of a condition-vector recommendation.
type Response struct {
	FoodType          FoodType           `json:"food_type"`
	FoodTypeLabel     string             `json:"food_type_label"`
	FoodTypeReason    string             `json:"food_type_reason"`
	ConditionSummary  map[string]bool    `json:"condition_summary"`
	Restaurants       []ScoredRestaurant `json:"restaurants"`
	TotalCount        int                `json:"total_count"`
	SecondaryFoodType *FoodType          `json:"secondary_food_type,omitempty"`

	// FallbackUsed reports whether the restaurants came from the secondary
	// food type after the primary search returned nothing.
	FallbackUsed bool `json:"fallback_used,omitempty"`
}

// GeoQuery carries the location constraint for a place search.
type GeoQuery struct {
	Lat    float64
	Lng    float64
	Radius int
	Size   int
}

// PlaceSearcher performs keyword searches against the place provider.
// Implementations must be safe for concurrent use.
type PlaceSearcher interface {
	// SearchKeyword returns places matching the keyword near the query
	// location, already normalized and sorted by provider relevance.
	SearchKeyword(ctx context.Context, keyword string, q GeoQuery) ([]Place, error)
}

// ReviewFetcher fetches the aggregate review summary for a place.
type ReviewFetcher interface {
	ReviewsFor(ctx context.Context, placeID string) (ReviewSummary, error)
}

// ImageFetcher fetches representative image URLs for a batch of places.
// The returned map is keyed by place ID; missing entries are allowed.
type ImageFetcher interface {
	ImagesFor(ctx context.Context, placeIDs []string) (map[string]string, error)
}
