// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/gastrograph/gastrograph/internal/recommend"
)

func newTestRouter(engine *stubEngine, store *stubStore) http.Handler {
	cfg := testConfig()
	handlers := NewHandlers(engine, store, cfg, zerolog.Nop())
	return NewRouter(handlers, &cfg.Security).Setup()
}

func TestRouterRoutes(t *testing.T) {
	engine := &stubEngine{}
	store := &stubStore{}
	router := newTestRouter(engine, store)

	cases := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"conditions", http.MethodGet, "/api/v1/conditions", "", http.StatusOK},
		{"restaurants", http.MethodGet, "/api/v1/restaurants", "", http.StatusOK},
		{"stats", http.MethodGet, "/api/v1/stats", "", http.StatusOK},
		{"health", http.MethodGet, "/api/v1/health", "", http.StatusOK},
		{"health live", http.MethodGet, "/api/v1/health/live", "", http.StatusOK},
		{"health ready", http.MethodGet, "/api/v1/health/ready", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/nothing", "", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/api/v1/conditions", "", http.StatusMethodNotAllowed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	router := newTestRouter(&stubEngine{}, &stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conditions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if !env.Success {
		t.Fatal("expected success envelope")
	}
}

func TestRouterRecommendEndToEnd(t *testing.T) {
	engine := &stubEngine{response: &recommend.Response{TotalCount: 1}}
	router := newTestRouter(engine, &stubStore{})

	body := `{"spicy":true,"soup":true,"lat":37.4979,"lng":127.0276}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if engine.lastRequest.Radius != 1200 {
		t.Errorf("radius = %d, want default 1200", engine.lastRequest.Radius)
	}
}
