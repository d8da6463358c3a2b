// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/gastrograph/gastrograph/internal/config"
)

// maxRequestBodyBytes caps request bodies to guard against oversized payloads.
const maxRequestBodyBytes = 1 << 20

// Default query location (Gangnam station) for the condition-rule path
// when the client does not send coordinates.
const (
	defaultConditionLat = 37.4979
	defaultConditionLng = 127.0276
)

// RecommendRequest is the body for the condition-vector recommendation endpoint.
type RecommendRequest struct {
	Spicy  bool    `json:"spicy"`
	Warm   bool    `json:"warm"`
	Light  bool    `json:"light"`
	Soup   bool    `json:"soup"`
	Lat    float64 `json:"lat" validate:"required,latitude"`
	Lng    float64 `json:"lng" validate:"required,longitude"`
	Radius int     `json:"radius" validate:"omitempty,min=200,max=5000"`
}

// normalize fills defaults the client omitted.
func (req *RecommendRequest) normalize(cfg *config.RecommendConfig) {
	if req.Radius == 0 {
		req.Radius = cfg.DefaultRadius
	}
}

// QuickRecommendRequest is the body for the keyword shortcut endpoint.
// Key selects one of the predefined condition keyword sets (e.g. "hangover_1").
type QuickRecommendRequest struct {
	Key    string  `json:"key" validate:"required"`
	Lat    float64 `json:"lat" validate:"required,latitude"`
	Lng    float64 `json:"lng" validate:"required,longitude"`
	Radius int     `json:"radius" validate:"omitempty,min=200,max=5000"`
}

func (req *QuickRecommendRequest) normalize(cfg *config.RecommendConfig) {
	if req.Radius == 0 {
		req.Radius = cfg.DefaultRadius
	}
}

// ConditionRecommendRequest is the body for the rule-based recommendation
// endpoint backed by the keyword-rule store.
type ConditionRecommendRequest struct {
	Condition string  `json:"condition" validate:"required"`
	Detail    string  `json:"detail" validate:"required"`
	Lat       float64 `json:"latitude" validate:"omitempty,latitude"`
	Lng       float64 `json:"longitude" validate:"omitempty,longitude"`
	Limit     int     `json:"limit" validate:"omitempty,min=1,max=20"`
}

func (req *ConditionRecommendRequest) normalize(cfg *config.RecommendConfig) {
	if req.Lat == 0 && req.Lng == 0 {
		req.Lat = defaultConditionLat
		req.Lng = defaultConditionLng
	}
	if req.Limit == 0 {
		req.Limit = cfg.RuleLimit
	}
}

// decodeJSON decodes a JSON request body into dst with a size cap and
// strict field checking.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxBytesErr.Limit)
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
