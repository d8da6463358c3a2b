// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

// Package recommend implements the condition-based recommendation engine.
//
// The engine maps a four-axis condition vector (spicy, warm, light, soup)
// to one of eight food types, searches the place provider for candidate
// restaurants using the food type's keywords, enriches the candidates with
// review ratings and images, and ranks them by a combined rating and
// distance score.
//
// The package has no dependencies on other internal packages. Collaborators
// are expressed as small interfaces (PlaceSearcher, ReviewFetcher,
// ImageFetcher) so the place client and tests can plug in without circular
// imports.
package recommend
