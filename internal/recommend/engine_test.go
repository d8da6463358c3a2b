// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package recommend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// mockSearcher implements PlaceSearcher for testing.
type mockSearcher struct {
	results map[string][]Place
	errs    map[string]error
	delays  map[string]time.Duration
	calls   atomic.Int32
}

func (m *mockSearcher) SearchKeyword(ctx context.Context, keyword string, q GeoQuery) ([]Place, error) {
	m.calls.Add(1)
	if d, ok := m.delays[keyword]; ok {
		time.Sleep(d)
	}
	if err, ok := m.errs[keyword]; ok {
		return nil, err
	}
	return m.results[keyword], nil
}

// mockReviews implements ReviewFetcher for testing.
type mockReviews struct {
	ratings map[string]float64
	errs    map[string]error
}

func (m *mockReviews) ReviewsFor(ctx context.Context, placeID string) (ReviewSummary, error) {
	if err, ok := m.errs[placeID]; ok {
		return ReviewSummary{}, err
	}
	return ReviewSummary{AvgRating: m.ratings[placeID]}, nil
}

// mockImages implements ImageFetcher for testing.
type mockImages struct {
	images map[string]string
	err    error
}

func (m *mockImages) ImagesFor(ctx context.Context, placeIDs []string) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.images, nil
}

func newTestEngine(t *testing.T, cfg *Config, s *mockSearcher, r *mockReviews, img *mockImages) *Engine {
	t.Helper()
	if s == nil {
		s = &mockSearcher{}
	}
	if r == nil {
		r = &mockReviews{}
	}
	if img == nil {
		img = &mockImages{}
	}
	e, err := NewEngine(cfg, s, r, img, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func place(id string, distance int) Place {
	return Place{ID: id, Name: "place-" + id, Category: "한식", Distance: distance}
}

func TestNewEngineRequiresCollaborators(t *testing.T) {
	if _, err := NewEngine(nil, nil, &mockReviews{}, &mockImages{}, zerolog.Nop()); err == nil {
		t.Error("expected error for nil searcher")
	}
	if _, err := NewEngine(nil, &mockSearcher{}, nil, &mockImages{}, zerolog.Nop()); err == nil {
		t.Error("expected error for nil review fetcher")
	}
	if _, err := NewEngine(nil, &mockSearcher{}, &mockReviews{}, nil, zerolog.Nop()); err == nil {
		t.Error("expected error for nil image fetcher")
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := &Config{SearchSize: 0, CandidateLimit: 10}
	if _, err := NewEngine(cfg, &mockSearcher{}, &mockReviews{}, &mockImages{}, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestSearchKeywordsDedupKeywordOrder(t *testing.T) {
	// "a" and "b" both return place 2. First keyword wins; the duplicate
	// from "b" is dropped even if "b" completes first.
	fromB := place("2", 100)
	fromB.Name = "duplicate-from-b"
	s := &mockSearcher{
		results: map[string][]Place{
			"a": {place("1", 300), place("2", 100)},
			"b": {fromB, place("3", 200)},
		},
		delays: map[string]time.Duration{"a": 20 * time.Millisecond},
	}
	e := newTestEngine(t, nil, s, nil, nil)

	got := e.searchKeywords(context.Background(), []string{"a", "b"}, GeoQuery{})
	if len(got) != 3 {
		t.Fatalf("got %d places, want 3", len(got))
	}
	// Sorted by distance.
	wantOrder := []string{"2", "3", "1"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
	if got[0].Name != "place-2" {
		t.Errorf("place 2 name = %q, want %q from the first keyword", got[0].Name, "place-2")
	}
}

func TestSearchKeywordsPartialFailure(t *testing.T) {
	s := &mockSearcher{
		results: map[string][]Place{
			"ok": {place("1", 100)},
		},
		errs: map[string]error{"bad": errors.New("provider unavailable")},
	}
	e := newTestEngine(t, nil, s, nil, nil)

	got := e.searchKeywords(context.Background(), []string{"bad", "ok"}, GeoQuery{})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %v, want single place 1", got)
	}
}

func TestSearchKeywordsAllFail(t *testing.T) {
	s := &mockSearcher{
		errs: map[string]error{"a": errors.New("down"), "b": errors.New("down")},
	}
	e := newTestEngine(t, nil, s, nil, nil)

	if got := e.searchKeywords(context.Background(), []string{"a", "b"}, GeoQuery{}); len(got) != 0 {
		t.Fatalf("got %d places, want 0", len(got))
	}
}

func TestSearchKeywordsCandidateLimit(t *testing.T) {
	many := make([]Place, 25)
	for i := range many {
		many[i] = place(string(rune('a'+i)), i*10)
	}
	s := &mockSearcher{results: map[string][]Place{"kw": many}}
	e := newTestEngine(t, nil, s, nil, nil)

	got := e.searchKeywords(context.Background(), []string{"kw"}, GeoQuery{})
	if len(got) != DefaultConfig().CandidateLimit {
		t.Fatalf("got %d places, want %d", len(got), DefaultConfig().CandidateLimit)
	}
}

func TestSearchKeywordsSkipsEmptyIDs(t *testing.T) {
	s := &mockSearcher{
		results: map[string][]Place{"kw": {{ID: "", Name: "anon"}, place("1", 50)}},
	}
	e := newTestEngine(t, nil, s, nil, nil)

	got := e.searchKeywords(context.Background(), []string{"kw"}, GeoQuery{})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %v, want single place 1", got)
	}
}

func TestEnrichScoresAndSorts(t *testing.T) {
	places := []Place{place("near", 150), place("far", 1300), place("mid", 350)}
	r := &mockReviews{ratings: map[string]float64{"near": 4.0, "far": 4.5, "mid": 4.0}}
	e := newTestEngine(t, nil, &mockSearcher{}, r, nil)

	got := e.enrich(context.Background(), places)
	if len(got) != 3 {
		t.Fatalf("got %d restaurants, want 3", len(got))
	}
	// near: 4.0*15+35=95, mid: 4.0*15+25=85, far: 4.5*15+0=67.5
	if got[0].ID != "near" || got[1].ID != "mid" || got[2].ID != "far" {
		t.Errorf("order = %s,%s,%s, want near,mid,far", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[0].RecommendationScore != 95.0 {
		t.Errorf("near score = %v, want 95.0", got[0].RecommendationScore)
	}
	if got[0].DistanceWeight != 35 {
		t.Errorf("near distance weight = %d, want 35", got[0].DistanceWeight)
	}
}

func TestEnrichTieBreaksRatingThenDistance(t *testing.T) {
	// Equal scores: a at 4.0/200 (95), b at 4.0/180 (95). Equal rating,
	// so shorter distance wins.
	places := []Place{place("a", 200), place("b", 180)}
	r := &mockReviews{ratings: map[string]float64{"a": 4.0, "b": 4.0}}
	e := newTestEngine(t, nil, &mockSearcher{}, r, nil)

	got := e.enrich(context.Background(), places)
	if got[0].ID != "b" {
		t.Errorf("first = %s, want b (shorter distance)", got[0].ID)
	}
}

func TestEnrichReviewFailureDefaultsRating(t *testing.T) {
	places := []Place{place("1", 100)}
	r := &mockReviews{errs: map[string]error{"1": errors.New("timeout")}}
	e := newTestEngine(t, nil, &mockSearcher{}, r, nil)

	got := e.enrich(context.Background(), places)
	if got[0].Rating != 0.0 {
		t.Errorf("rating = %v, want 0.0", got[0].Rating)
	}
	// Distance weight still applies.
	if got[0].RecommendationScore != 35.0 {
		t.Errorf("score = %v, want 35.0", got[0].RecommendationScore)
	}
}

func TestEnrichImageFallback(t *testing.T) {
	p := place("1", 100)
	p.ImageURL = "https://example.com/search.jpg"
	e := newTestEngine(t, nil, &mockSearcher{}, nil, &mockImages{err: errors.New("down")})

	got := e.enrich(context.Background(), []Place{p})
	if got[0].ImageURL != "https://example.com/search.jpg" {
		t.Errorf("image URL = %q, want search result fallback", got[0].ImageURL)
	}
}

func TestEnrichImageOverride(t *testing.T) {
	p := place("1", 100)
	p.ImageURL = "https://example.com/search.jpg"
	img := &mockImages{images: map[string]string{"1": "https://example.com/fetched.jpg"}}
	e := newTestEngine(t, nil, &mockSearcher{}, nil, img)

	got := e.enrich(context.Background(), []Place{p})
	if got[0].ImageURL != "https://example.com/fetched.jpg" {
		t.Errorf("image URL = %q, want fetched image", got[0].ImageURL)
	}
}

func TestEnrichEmptyInput(t *testing.T) {
	e := newTestEngine(t, nil, &mockSearcher{}, nil, nil)
	if got := e.enrich(context.Background(), nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestRecommendHappyPath(t *testing.T) {
	// spicy+warm+soup selects SPICY_SOUP; its first keyword returns one
	// place.
	s := &mockSearcher{
		results: map[string][]Place{"김치찌개": {place("1", 100)}},
	}
	r := &mockReviews{ratings: map[string]float64{"1": 4.0}}
	e := newTestEngine(t, nil, s, r, nil)

	resp, err := e.Recommend(context.Background(), Request{
		Condition: ConditionVector{Spicy: true, Warm: true, Soup: true},
		Lat:       37.4979, Lng: 127.0276, Radius: 1200,
	})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if resp.FoodType != SpicySoup {
		t.Errorf("food type = %s, want %s", resp.FoodType, SpicySoup)
	}
	if resp.FoodTypeLabel != Label(SpicySoup) {
		t.Errorf("label = %q, want %q", resp.FoodTypeLabel, Label(SpicySoup))
	}
	if resp.TotalCount != 1 || len(resp.Restaurants) != 1 {
		t.Fatalf("total count = %d, restaurants = %d, want 1 each", resp.TotalCount, len(resp.Restaurants))
	}
	if resp.Restaurants[0].RecommendationScore != 95.0 {
		t.Errorf("score = %v, want 95.0", resp.Restaurants[0].RecommendationScore)
	}
	if resp.SecondaryFoodType == nil || *resp.SecondaryFoodType != MildSoup {
		t.Errorf("secondary = %v, want %s", resp.SecondaryFoodType, MildSoup)
	}
	if !resp.ConditionSummary["spicy"] || !resp.ConditionSummary["warm"] || !resp.ConditionSummary["soup"] || resp.ConditionSummary["light"] {
		t.Errorf("condition summary = %v", resp.ConditionSummary)
	}
}

func TestRecommendFallbackToSecondary(t *testing.T) {
	// Primary SPICY_SOUP keywords return nothing; MILD_SOUP keywords do.
	s := &mockSearcher{
		results: map[string][]Place{"설렁탕": {place("1", 100)}},
	}
	e := newTestEngine(t, nil, s, nil, nil)

	resp, err := e.Recommend(context.Background(), Request{
		Condition: ConditionVector{Spicy: true, Warm: true, Soup: true},
		Radius:    1200,
	})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	// Response still reports the primary type.
	if resp.FoodType != SpicySoup {
		t.Errorf("food type = %s, want %s", resp.FoodType, SpicySoup)
	}
	if resp.TotalCount != 1 {
		t.Errorf("total count = %d, want 1 from secondary search", resp.TotalCount)
	}
	if !resp.FallbackUsed {
		t.Error("expected FallbackUsed to be set")
	}
	if e.Stats().Fallbacks != 1 {
		t.Errorf("fallbacks = %d, want 1", e.Stats().Fallbacks)
	}
}

func TestRecommendBothEmpty(t *testing.T) {
	e := newTestEngine(t, nil, &mockSearcher{}, nil, nil)

	resp, err := e.Recommend(context.Background(), Request{
		Condition: ConditionVector{Spicy: true, Warm: true, Soup: true},
		Radius:    1200,
	})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if resp.TotalCount != 0 || len(resp.Restaurants) != 0 {
		t.Errorf("expected empty result, got %d", resp.TotalCount)
	}
	if e.Stats().Empty != 1 {
		t.Errorf("empty count = %d, want 1", e.Stats().Empty)
	}
}

func TestRecommendCache(t *testing.T) {
	s := &mockSearcher{
		results: map[string][]Place{"김치찌개": {place("1", 100)}},
	}
	cfg := DefaultConfig()
	cfg.CacheEnabled = true
	cfg.CacheTTL = time.Minute
	e := newTestEngine(t, cfg, s, nil, nil)

	req := Request{
		Condition: ConditionVector{Spicy: true, Warm: true, Soup: true},
		Lat:       37.4979, Lng: 127.0276, Radius: 1200,
	}
	if _, err := e.Recommend(context.Background(), req); err != nil {
		t.Fatalf("first Recommend failed: %v", err)
	}
	callsAfterFirst := s.calls.Load()
	if _, err := e.Recommend(context.Background(), req); err != nil {
		t.Fatalf("second Recommend failed: %v", err)
	}
	if s.calls.Load() != callsAfterFirst {
		t.Error("second request should be served from cache")
	}
	if e.Stats().CacheHits != 1 {
		t.Errorf("cache hits = %d, want 1", e.Stats().CacheHits)
	}
}

func TestQuickRecommend(t *testing.T) {
	// hangover_1 searches its first two keywords only.
	s := &mockSearcher{
		results: map[string][]Place{
			"해장국":    {place("1", 100)},
			"콩나물국밥": {place("2", 200)},
			"북어국":    {place("3", 300)},
		},
	}
	e := newTestEngine(t, nil, s, nil, nil)

	got, err := e.QuickRecommend(context.Background(), "hangover_1", 37.5, 127.0, 1000)
	if err != nil {
		t.Fatalf("QuickRecommend failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d restaurants, want 2 (third keyword not searched)", len(got))
	}
}

func TestQuickRecommendUnknownKey(t *testing.T) {
	e := newTestEngine(t, nil, &mockSearcher{}, nil, nil)
	if _, err := e.QuickRecommend(context.Background(), "nope", 0, 0, 1000); !errors.Is(err, ErrUnknownConditionKey) {
		t.Errorf("err = %v, want ErrUnknownConditionKey", err)
	}
}
