// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gastrograph/gastrograph/internal/metrics"
)

// ErrUnknownCondition is returned when a condition/detail pair has no
// rules. The API layer maps it to a bad request.
var ErrUnknownCondition = errors.New("unknown condition")

// Restaurant is one ranked result from the rule-based recommendation
// query.
type Restaurant struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category,omitempty"`
	Address         string   `json:"address,omitempty"`
	RoadAddress     string   `json:"road_address,omitempty"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Phone           string   `json:"phone,omitempty"`
	Rating          *float64 `json:"rating"`
	NaverMapURL     string   `json:"naver_map_url,omitempty"`
	DistanceM       int      `json:"distance_m"`
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// RestaurantInput is the insert payload for a restaurant row.
type RestaurantInput struct {
	Name        string
	Category    string
	Address     string
	RoadAddress string
	Latitude    float64
	Longitude   float64
	Phone       string
	Rating      *float64
	NaverMapURL string
	ImageURL    string
}

// RestaurantSummary is one row of the restaurant listing.
type RestaurantSummary struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	Address     string   `json:"address,omitempty"`
	Rating      *float64 `json:"rating"`
	NaverMapURL string   `json:"naver_map_url,omitempty"`
}

// recommendQuery scores open restaurants against a keyword set. The
// distance column is a haversine great-circle distance in meters; the acos
// argument is clamped to avoid NaN from floating point drift when a
// restaurant sits exactly at the query point.
//
// Final score: 2 points per matched keyword occurrence, 10 points per
// rating star, minus 0.001 per meter. Restaurants qualify by matching at
// least one keyword or by sitting within 1500 m.
const recommendQueryTemplate = `
WITH keyword_scores AS (
    SELECT
        r.id,
        r.name,
        r.category,
        r.address,
        r.road_address,
        r.latitude,
        r.longitude,
        r.phone,
        r.rating,
        r.naver_map_url,
        COALESCE(SUM(rk.count), 0) AS keyword_count,
        COALESCE(string_agg(DISTINCT rk.keyword, ','), '') AS matched_keywords,
        CAST(ROUND(
            6371000 * acos(least(1.0, greatest(-1.0,
                cos(radians(?)) * cos(radians(r.latitude)) *
                cos(radians(r.longitude) - radians(?)) +
                sin(radians(?)) * sin(radians(r.latitude))
            )))
        ) AS INTEGER) AS distance_m
    FROM restaurants r
    LEFT JOIN restaurant_keywords rk
        ON r.id = rk.restaurant_id
        AND rk.keyword IN (%s)
    WHERE r.status = 'OPEN'
    GROUP BY ALL
)
SELECT
    id, name, category, address, road_address, latitude, longitude,
    phone, rating, naver_map_url, keyword_count, matched_keywords, distance_m,
    (keyword_count * 2 + COALESCE(rating, 0) * 10 - distance_m * 0.001) AS score
FROM keyword_scores
WHERE keyword_count > 0 OR distance_m < 1500
ORDER BY score DESC, id ASC
LIMIT ?`

// RecommendByCondition looks up the rules for the condition/detail pair
// and runs the scoring query with the rules' keywords. Returns
// ErrUnknownCondition when the pair has no rules.
func (db *DB) RecommendByCondition(ctx context.Context, condition, detail string, lat, lng float64, limit int) ([]Restaurant, error) {
	rules, err := db.RulesFor(ctx, condition, detail)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownCondition, condition, detail)
	}

	placeholders := make([]string, len(rules))
	args := []interface{}{lat, lng, lat}
	for i, r := range rules {
		placeholders[i] = "?"
		args = append(args, r.TargetKeyword)
	}
	args = append(args, limit)
	query := fmt.Sprintf(recommendQueryTemplate, strings.Join(placeholders, ", "))

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("recommend_by_condition", start, err)
	if err != nil {
		return nil, fmt.Errorf("recommend query: %w", err)
	}
	defer rows.Close()

	var results []Restaurant
	for rows.Next() {
		var (
			r        Restaurant
			category sql.NullString
			address  sql.NullString
			roadAddr sql.NullString
			phone    sql.NullString
			rating   sql.NullFloat64
			mapURL   sql.NullString
			kwCount  int
			matched  string
		)
		if err := rows.Scan(&r.ID, &r.Name, &category, &address, &roadAddr,
			&r.Latitude, &r.Longitude, &phone, &rating, &mapURL,
			&kwCount, &matched, &r.DistanceM, &r.Score); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		r.Category = category.String
		r.Address = address.String
		r.RoadAddress = roadAddr.String
		r.Phone = phone.String
		r.NaverMapURL = mapURL.String
		if rating.Valid {
			v := rating.Float64
			r.Rating = &v
		}
		if matched != "" {
			r.MatchedKeywords = strings.Split(matched, ",")
		} else {
			r.MatchedKeywords = []string{}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	return results, nil
}

// ListRestaurants returns open restaurants ordered by rating. Unrated
// restaurants sort last.
func (db *DB) ListRestaurants(ctx context.Context, limit int) ([]RestaurantSummary, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, category, address, rating, naver_map_url
		FROM restaurants
		WHERE status = 'OPEN'
		ORDER BY rating DESC NULLS LAST, id ASC
		LIMIT ?`, limit)
	metrics.RecordDBQuery("list_restaurants", start, err)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var results []RestaurantSummary
	for rows.Next() {
		var (
			r        RestaurantSummary
			category sql.NullString
			address  sql.NullString
			rating   sql.NullFloat64
			mapURL   sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &category, &address, &rating, &mapURL); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		r.Category = category.String
		r.Address = address.String
		r.NaverMapURL = mapURL.String
		if rating.Valid {
			v := rating.Float64
			r.Rating = &v
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}
	return results, nil
}

// AddRestaurant inserts a restaurant and returns its generated ID.
func (db *DB) AddRestaurant(ctx context.Context, in RestaurantInput) (int, error) {
	start := time.Now()
	var id int
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO restaurants
			(name, category, address, road_address, latitude, longitude,
			 phone, rating, naver_map_url, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		in.Name, in.Category, in.Address, in.RoadAddress, in.Latitude, in.Longitude,
		in.Phone, in.Rating, in.NaverMapURL, in.ImageURL).Scan(&id)
	metrics.RecordDBQuery("add_restaurant", start, err)
	if err != nil {
		return 0, fmt.Errorf("insert restaurant %q: %w", in.Name, err)
	}
	return id, nil
}

// SetKeywordCount upserts a review keyword count for a restaurant.
func (db *DB) SetKeywordCount(ctx context.Context, restaurantID int, keyword string, count int) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO restaurant_keywords (restaurant_id, keyword, count)
		VALUES (?, ?, ?)
		ON CONFLICT (restaurant_id, keyword)
		DO UPDATE SET count = excluded.count, updated_at = now()`,
		restaurantID, keyword, count)
	metrics.RecordDBQuery("set_keyword_count", start, err)
	if err != nil {
		return fmt.Errorf("upsert keyword %q for restaurant %d: %w", keyword, restaurantID, err)
	}
	return nil
}
