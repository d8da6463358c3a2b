// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package places

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/gastrograph/gastrograph/internal/logging"
	"github.com/gastrograph/gastrograph/internal/metrics"
	"github.com/gastrograph/gastrograph/internal/recommend"
)

// BreakerClient wraps Client with a circuit breaker so a degraded place
// provider cannot tie up every recommendation request. It implements
// recommend.PlaceSearcher, recommend.ReviewFetcher, and
// recommend.ImageFetcher.
//
// The breaker uses real time for its interval and timeout handling. Unit
// tests should exercise the wrapped Client directly rather than waiting
// out breaker state transitions.
type BreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

var (
	_ recommend.PlaceSearcher = (*BreakerClient)(nil)
	_ recommend.ReviewFetcher = (*BreakerClient)(nil)
	_ recommend.ImageFetcher  = (*BreakerClient)(nil)
)

// NewBreakerClient wraps client with a circuit breaker. The breaker opens
// after a 60% failure rate over at least 10 requests, waits 30 seconds
// before probing, and allows 3 requests in half-open state.
func NewBreakerClient(client *Client) *BreakerClient {
	cbName := "place-provider"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening place provider circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("Place provider circuit state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerClient{client: client, cb: cb, name: cbName}
}

// execute runs a provider call through the circuit breaker, recording the
// outcome.
func (bc *BreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := bc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "success").Inc()
	return result, nil
}

func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// SearchKeyword runs a keyword search with circuit breaker protection.
func (bc *BreakerClient) SearchKeyword(ctx context.Context, keyword string, q recommend.GeoQuery) ([]recommend.Place, error) {
	return castResult[[]recommend.Place](bc.execute(func() (interface{}, error) {
		return bc.client.SearchKeyword(ctx, keyword, q)
	}))
}

// ReviewsFor fetches a review summary with circuit breaker protection.
func (bc *BreakerClient) ReviewsFor(ctx context.Context, placeID string) (recommend.ReviewSummary, error) {
	return castResult[recommend.ReviewSummary](bc.execute(func() (interface{}, error) {
		return bc.client.ReviewsFor(ctx, placeID)
	}))
}

// ImagesFor fetches a batch of images with circuit breaker protection.
func (bc *BreakerClient) ImagesFor(ctx context.Context, placeIDs []string) (map[string]string, error) {
	return castResult[map[string]string](bc.execute(func() (interface{}, error) {
		return bc.client.ImagesFor(ctx, placeIDs)
	}))
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
