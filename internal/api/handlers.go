// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gastrograph/gastrograph/internal/config"
	"github.com/gastrograph/gastrograph/internal/database"
	"github.com/gastrograph/gastrograph/internal/metrics"
	"github.com/gastrograph/gastrograph/internal/recommend"
	"github.com/gastrograph/gastrograph/internal/validation"
)

// readinessTimeout bounds the database ping in the readiness probe.
const readinessTimeout = 2 * time.Second

// Recommender is the part of the recommendation engine the handlers use.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	QuickRecommend(ctx context.Context, key string, lat, lng float64, radius int) ([]recommend.ScoredRestaurant, error)
	Stats() recommend.Stats
}

// RuleStore is the part of the database layer the handlers use.
type RuleStore interface {
	RecommendByCondition(ctx context.Context, condition, detail string, lat, lng float64, limit int) ([]database.Restaurant, error)
	ListRestaurants(ctx context.Context, limit int) ([]database.RestaurantSummary, error)
	Ping(ctx context.Context) error
}

// Handlers holds the HTTP handlers and their collaborators.
type Handlers struct {
	engine Recommender
	store  RuleStore
	cfg    *config.Config
	logger zerolog.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(engine Recommender, store RuleStore, cfg *config.Config, logger zerolog.Logger) *Handlers {
	return &Handlers{
		engine: engine,
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// Recommend handles POST /api/v1/recommend. It classifies the condition
// vector into a food type and returns enriched, ranked restaurants.
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	req.normalize(&h.cfg.Recommend)

	metrics.RecommendRequestsTotal.WithLabelValues("food_type").Inc()

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Condition: recommend.ConditionVector{
			Spicy: req.Spicy,
			Warm:  req.Warm,
			Light: req.Light,
			Soup:  req.Soup,
		},
		Lat:    req.Lat,
		Lng:    req.Lng,
		Radius: req.Radius,
	})
	if err != nil {
		rw.ExternalServiceError("place-provider", err)
		return
	}

	if resp.FallbackUsed {
		metrics.RecommendFallbacksTotal.Inc()
	}
	if resp.TotalCount == 0 {
		metrics.RecommendEmptyResultsTotal.Inc()
	}

	rw.Success(resp)
}

// quickRecommendResponse is the payload for the keyword shortcut endpoint.
type quickRecommendResponse struct {
	Key         string                       `json:"key"`
	Restaurants []recommend.ScoredRestaurant `json:"restaurants"`
	TotalCount  int                          `json:"total_count"`
}

// QuickRecommend handles POST /api/v1/recommend/quick. It searches a
// predefined keyword set directly, skipping food-type classification.
func (h *Handlers) QuickRecommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req QuickRecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	req.normalize(&h.cfg.Recommend)

	metrics.RecommendRequestsTotal.WithLabelValues("quick").Inc()

	restaurants, err := h.engine.QuickRecommend(r.Context(), req.Key, req.Lat, req.Lng, req.Radius)
	if err != nil {
		if errors.Is(err, recommend.ErrUnknownConditionKey) {
			rw.UnknownCondition(fmt.Sprintf("unknown condition key: %q", req.Key))
			return
		}
		rw.ExternalServiceError("place-provider", err)
		return
	}
	if len(restaurants) == 0 {
		metrics.RecommendEmptyResultsTotal.Inc()
		restaurants = []recommend.ScoredRestaurant{}
	}

	rw.Success(quickRecommendResponse{
		Key:         req.Key,
		Restaurants: restaurants,
		TotalCount:  len(restaurants),
	})
}

// conditionRecommendResponse is the payload for the rule-based endpoint.
type conditionRecommendResponse struct {
	Condition   string                `json:"condition"`
	Detail      string                `json:"detail"`
	Message     string                `json:"message"`
	Restaurants []database.Restaurant `json:"restaurants"`
	TotalCount  int                   `json:"total_count"`
}

// RecommendByCondition handles POST /api/v1/recommend/condition. It scores
// restaurants from the keyword-rule store for a condition/detail pair.
func (h *Handlers) RecommendByCondition(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ConditionRecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	req.normalize(&h.cfg.Recommend)

	metrics.RecommendRequestsTotal.WithLabelValues("condition_rule").Inc()

	restaurants, err := h.store.RecommendByCondition(r.Context(), req.Condition, req.Detail, req.Lat, req.Lng, req.Limit)
	if err != nil {
		if errors.Is(err, database.ErrUnknownCondition) {
			rw.UnknownCondition(fmt.Sprintf("unknown condition pair: %s/%s", req.Condition, req.Detail))
			return
		}
		rw.DatabaseError(err)
		return
	}
	if len(restaurants) == 0 {
		metrics.RecommendEmptyResultsTotal.Inc()
		restaurants = []database.Restaurant{}
	}

	rw.Success(conditionRecommendResponse{
		Condition:   req.Condition,
		Detail:      req.Detail,
		Message:     recommend.ConditionMessage(req.Condition, req.Detail),
		Restaurants: restaurants,
		TotalCount:  len(restaurants),
	})
}

// conditionsResponse is the payload for the condition catalog endpoint.
type conditionsResponse struct {
	Conditions []recommend.Condition `json:"conditions"`
}

// Conditions handles GET /api/v1/conditions. It returns the condition
// catalog the client renders as selection cards.
func (h *Handlers) Conditions(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(conditionsResponse{
		Conditions: recommend.ConditionCatalog(),
	})
}

// Restaurants handles GET /api/v1/restaurants. It lists stored restaurants
// ordered by rating.
func (h *Handlers) Restaurants(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			rw.BadRequest("limit must be a positive integer")
			return
		}
		if parsed > 100 {
			parsed = 100
		}
		limit = parsed
	}

	restaurants, err := h.store.ListRestaurants(r.Context(), limit)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	if restaurants == nil {
		restaurants = []database.RestaurantSummary{}
	}

	rw.SuccessWithPagination(restaurants, &PaginationMeta{
		Count:   len(restaurants),
		Limit:   limit,
		HasMore: len(restaurants) == limit,
	})
}

// Stats handles GET /api/v1/stats. It returns engine counters for
// operational visibility.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.Stats())
}

// healthResponse is the payload for the combined health endpoint.
type healthResponse struct {
	Status   string          `json:"status"`
	Database string          `json:"database"`
	Engine   recommend.Stats `json:"engine"`
}

// Health handles GET /api/v1/health. It reports overall status with the
// database check result and engine counters.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		Database: "ok",
		Engine:   h.engine.Stats(),
	}
	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Health check database ping failed")
		resp.Status = "degraded"
		resp.Database = "unreachable"
	}

	rw.Success(resp)
}

// HealthLive handles GET /api/v1/health/live. Liveness only confirms the
// process is serving requests.
func (h *Handlers) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready. Readiness requires the
// database to answer a ping.
func (h *Handlers) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("Readiness probe failed")
		rw.ServiceUnavailable("database unavailable")
		return
	}

	rw.Success(map[string]string{"status": "ready"})
}
