// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

// Package places implements the HTTP client for the place provider: keyword
// search, per-place review summaries, and batched image lookups. The
// BreakerClient wrapper adds circuit breaker protection and implements the
// recommend package's collaborator interfaces.
package places

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/gastrograph/gastrograph/internal/config"
	"github.com/gastrograph/gastrograph/internal/metrics"
	"github.com/gastrograph/gastrograph/internal/recommend"
)

// restaurantCategoryGroup is the provider's category group code for
// restaurants. All keyword searches are scoped to it.
const restaurantCategoryGroup = "FD6"

// maxResponseBytes caps provider response bodies.
const maxResponseBytes = 4 << 20

// Client is the raw place provider HTTP client. Use NewBreakerClient for
// the production wrapper with circuit breaker protection.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient builds a place provider client from config.
func NewClient(cfg *config.PlacesConfig, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		pageSize: cfg.PageSize,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With().Str("component", "places_client").Logger(),
	}
}

// searchDocument is one place entry in the provider's keyword search
// response, in the provider's own field layout.
type searchDocument struct {
	ID              string `json:"id"`
	PlaceName       string `json:"place_name"`
	CategoryName    string `json:"category_name"`
	RoadAddressName string `json:"road_address_name"`
	AddressName     string `json:"address_name"`
	Phone           string `json:"phone"`
	PlaceURL        string `json:"place_url"`
	X               string `json:"x"`
	Y               string `json:"y"`
	Distance        string `json:"distance"`
}

type searchResponse struct {
	Documents []searchDocument `json:"documents"`
	Meta      struct {
		TotalCount int  `json:"total_count"`
		IsEnd      bool `json:"is_end"`
	} `json:"meta"`
}

type reviewResponse struct {
	AvgScore    float64 `json:"avg_score"`
	ReviewCount int     `json:"review_count"`
}

type imagesResponse struct {
	Images map[string]string `json:"images"`
}

// SearchKeyword runs a keyword search scoped to restaurants near the query
// location. Results are normalized into the recommend package's Place
// shape.
func (c *Client) SearchKeyword(ctx context.Context, keyword string, q recommend.GeoQuery) ([]recommend.Place, error) {
	start := time.Now()

	size := q.Size
	if size <= 0 {
		size = c.pageSize
	}
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("category_group_code", restaurantCategoryGroup)
	params.Set("sort", "accuracy")
	params.Set("size", strconv.Itoa(size))
	if q.Lat != 0 || q.Lng != 0 {
		params.Set("y", strconv.FormatFloat(q.Lat, 'f', -1, 64))
		params.Set("x", strconv.FormatFloat(q.Lng, 'f', -1, 64))
		params.Set("radius", strconv.Itoa(q.Radius))
	}

	var parsed searchResponse
	err := c.getJSON(ctx, c.baseURL+"/v2/local/search/keyword.json?"+params.Encode(), &parsed)
	metrics.RecordPlaceCall("search", start, err)
	if err != nil {
		return nil, fmt.Errorf("keyword search %q: %w", keyword, err)
	}

	places := make([]recommend.Place, 0, len(parsed.Documents))
	for _, doc := range parsed.Documents {
		places = append(places, normalizePlace(doc))
	}
	return places, nil
}

// ReviewsFor fetches the aggregate review summary for a place.
func (c *Client) ReviewsFor(ctx context.Context, placeID string) (recommend.ReviewSummary, error) {
	start := time.Now()

	var parsed reviewResponse
	err := c.getJSON(ctx, c.baseURL+"/v1/places/"+url.PathEscape(placeID)+"/reviews", &parsed)
	metrics.RecordPlaceCall("reviews", start, err)
	if err != nil {
		return recommend.ReviewSummary{}, fmt.Errorf("reviews for place %s: %w", placeID, err)
	}
	return recommend.ReviewSummary{AvgRating: parsed.AvgScore, ReviewCount: parsed.ReviewCount}, nil
}

// ImagesFor fetches representative image URLs for a batch of places in one
// request. Places without an image are simply absent from the result.
func (c *Client) ImagesFor(ctx context.Context, placeIDs []string) (map[string]string, error) {
	if len(placeIDs) == 0 {
		return map[string]string{}, nil
	}
	start := time.Now()

	params := url.Values{}
	params.Set("ids", strings.Join(placeIDs, ","))

	var parsed imagesResponse
	err := c.getJSON(ctx, c.baseURL+"/v1/places/images?"+params.Encode(), &parsed)
	metrics.RecordPlaceCall("images", start, err)
	if err != nil {
		return nil, fmt.Errorf("images for %d places: %w", len(placeIDs), err)
	}
	if parsed.Images == nil {
		return map[string]string{}, nil
	}
	return parsed.Images, nil
}

// getJSON performs an authenticated GET and decodes the JSON response into
// out.
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the log line, then discard.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("Place provider returned non-200 status")
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// normalizePlace converts a provider document into the normalized Place
// shape. The category keeps only the most specific segment; the address
// prefers the road address.
func normalizePlace(doc searchDocument) recommend.Place {
	category := doc.CategoryName
	if idx := strings.LastIndex(category, " > "); idx >= 0 {
		category = category[idx+len(" > "):]
	}
	address := doc.RoadAddressName
	if address == "" {
		address = doc.AddressName
	}

	lat, _ := strconv.ParseFloat(doc.Y, 64)
	lng, _ := strconv.ParseFloat(doc.X, 64)
	distance, err := strconv.Atoi(doc.Distance)
	if err != nil {
		distance = 0
	}

	return recommend.Place{
		ID:           doc.ID,
		Name:         doc.PlaceName,
		Category:     category,
		FullCategory: doc.CategoryName,
		Address:      address,
		Phone:        doc.Phone,
		PlaceURL:     doc.PlaceURL,
		Lat:          lat,
		Lng:          lng,
		Distance:     distance,
	}
}
