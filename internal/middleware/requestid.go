// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

// Package middleware provides the HTTP middleware used by the API router:
// request ID propagation and Prometheus request instrumentation. Rate
// limiting, CORS, and panic recovery come from chi and are wired directly
// in the router.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/gastrograph/gastrograph/internal/logging"
)

// RequestIDHeader is the header carrying the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a unique ID, honoring an ID supplied by an
// upstream proxy. The ID is echoed in the response header and attached to
// the request context so log lines can carry it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
