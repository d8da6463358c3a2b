// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gastrograph/gastrograph/internal/config"
	"github.com/gastrograph/gastrograph/internal/recommend"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.PlacesConfig{
		BaseURL:  srv.URL,
		APIKey:   "test-key",
		Timeout:  2 * time.Second,
		PageSize: 15,
	}
	return NewClient(cfg, zerolog.Nop()), srv
}

func TestSearchKeywordNormalizes(t *testing.T) {
	var gotAuth, gotQuery, gotCategory string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		gotCategory = r.URL.Query().Get("category_group_code")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"documents": [{
				"id": "1001",
				"place_name": "강남 김치찌개",
				"category_name": "음식점 > 한식 > 찌개,전골",
				"road_address_name": "서울 강남구 테헤란로 1",
				"address_name": "서울 강남구 역삼동 1",
				"phone": "02-123-4567",
				"place_url": "https://place.example.com/1001",
				"x": "127.0276",
				"y": "37.4979",
				"distance": "250"
			}],
			"meta": {"total_count": 1, "is_end": true}
		}`))
	}))

	got, err := c.SearchKeyword(context.Background(), "김치찌개", recommend.GeoQuery{
		Lat: 37.4979, Lng: 127.0276, Radius: 1200, Size: 15,
	})
	if err != nil {
		t.Fatalf("SearchKeyword failed: %v", err)
	}
	if gotAuth != "KakaoAK test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotQuery != "김치찌개" {
		t.Errorf("query param = %q", gotQuery)
	}
	if gotCategory != restaurantCategoryGroup {
		t.Errorf("category param = %q, want %q", gotCategory, restaurantCategoryGroup)
	}
	if len(got) != 1 {
		t.Fatalf("got %d places, want 1", len(got))
	}
	p := got[0]
	if p.ID != "1001" || p.Name != "강남 김치찌개" {
		t.Errorf("place = %+v", p)
	}
	if p.Category != "찌개,전골" {
		t.Errorf("category = %q, want last segment", p.Category)
	}
	if p.FullCategory != "음식점 > 한식 > 찌개,전골" {
		t.Errorf("full category = %q", p.FullCategory)
	}
	if p.Address != "서울 강남구 테헤란로 1" {
		t.Errorf("address = %q, want road address", p.Address)
	}
	if p.Lat != 37.4979 || p.Lng != 127.0276 {
		t.Errorf("coordinates = %v,%v", p.Lat, p.Lng)
	}
	if p.Distance != 250 {
		t.Errorf("distance = %d, want 250", p.Distance)
	}
}

func TestSearchKeywordFallsBackToLotAddress(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents": [{"id": "1", "place_name": "x", "category_name": "음식점",
			"road_address_name": "", "address_name": "서울 강남구 역삼동 1",
			"x": "127.0", "y": "37.5", "distance": ""}], "meta": {}}`))
	}))

	got, err := c.SearchKeyword(context.Background(), "x", recommend.GeoQuery{})
	if err != nil {
		t.Fatalf("SearchKeyword failed: %v", err)
	}
	if got[0].Address != "서울 강남구 역삼동 1" {
		t.Errorf("address = %q, want lot address", got[0].Address)
	}
	// Empty distance string parses to 0.
	if got[0].Distance != 0 {
		t.Errorf("distance = %d, want 0", got[0].Distance)
	}
}

func TestSearchKeywordProviderError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	if _, err := c.SearchKeyword(context.Background(), "x", recommend.GeoQuery{}); err == nil {
		t.Error("expected error for 429 response")
	}
}

func TestReviewsFor(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/places/1001/reviews" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"avg_score": 4.3, "review_count": 57}`))
	}))

	got, err := c.ReviewsFor(context.Background(), "1001")
	if err != nil {
		t.Fatalf("ReviewsFor failed: %v", err)
	}
	if got.AvgRating != 4.3 || got.ReviewCount != 57 {
		t.Errorf("summary = %+v", got)
	}
}

func TestImagesFor(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ids := r.URL.Query().Get("ids"); ids != "1,2" {
			t.Errorf("ids param = %q", ids)
		}
		w.Write([]byte(`{"images": {"1": "https://img.example.com/1.jpg"}}`))
	}))

	got, err := c.ImagesFor(context.Background(), []string{"1", "2"})
	if err != nil {
		t.Fatalf("ImagesFor failed: %v", err)
	}
	if got["1"] != "https://img.example.com/1.jpg" {
		t.Errorf("images = %v", got)
	}
	if _, ok := got["2"]; ok {
		t.Error("place 2 should have no image")
	}
}

func TestImagesForEmptyInput(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty input")
	}))

	got, err := c.ImagesFor(context.Background(), nil)
	if err != nil {
		t.Fatalf("ImagesFor failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty map", got)
	}
}

func TestImagesForNullBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images": null}`))
	}))

	got, err := c.ImagesFor(context.Background(), []string{"1"})
	if err != nil {
		t.Fatalf("ImagesFor failed: %v", err)
	}
	if got == nil {
		t.Error("expected non-nil map")
	}
}

func TestBreakerClientPassesThrough(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents": [], "meta": {}}`))
	}))
	bc := NewBreakerClient(c)

	if _, err := bc.SearchKeyword(context.Background(), "x", recommend.GeoQuery{}); err != nil {
		t.Errorf("SearchKeyword through breaker failed: %v", err)
	}
	if _, err := bc.ImagesFor(context.Background(), nil); err != nil {
		t.Errorf("ImagesFor through breaker failed: %v", err)
	}
}

func TestBreakerClientPropagatesErrors(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	bc := NewBreakerClient(c)

	if _, err := bc.ReviewsFor(context.Background(), "1"); err == nil {
		t.Error("expected error for 500 response")
	}
}
