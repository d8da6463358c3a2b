// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package recommend

import "sort"

// ComputeFoodTypeScores scores all eight food types against the condition
// vector. Every food type appears in the result, including zero scores.
func ComputeFoodTypeScores(v ConditionVector) map[FoodType]int {
	flags := v.Flags()
	active := make(map[string]bool, len(flags))
	for _, f := range flags {
		active[f] = true
	}

	scores := make(map[FoodType]int, len(scoreRules))
	for ft, rules := range scoreRules {
		total := 0
		for _, r := range rules {
			if active[r.flag] {
				total += r.points
			}
		}
		scores[ft] = total
	}
	return scores
}

// SelectFoodTypes picks the primary and secondary food type from a score
// map. Ties break by soup-bearing, then warm-bearing, then heavy-bearing,
// then the fixed priority order. The secondary is the next best type with
// a positive score, or nil when none exists.
func SelectFoodTypes(scores map[FoodType]int) (FoodType, *FoodType) {
	ranked := make([]FoodType, 0, len(scores))
	for ft := range scores {
		ranked = append(ranked, ft)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		if hasSoup[a] != hasSoup[b] {
			return hasSoup[a]
		}
		if hasWarm[a] != hasWarm[b] {
			return hasWarm[a]
		}
		if hasHeavy[a] != hasHeavy[b] {
			return hasHeavy[a]
		}
		return priorityIndex(a) < priorityIndex(b)
	})

	primary := ranked[0]
	for _, ft := range ranked[1:] {
		if scores[ft] > 0 {
			secondary := ft
			return primary, &secondary
		}
	}
	return primary, nil
}

func priorityIndex(ft FoodType) int {
	for i, p := range foodTypePriority {
		if p == ft {
			return i
		}
	}
	return len(foodTypePriority)
}

// DistanceWeight converts a distance in meters into its score band.
func DistanceWeight(distanceM int) int {
	switch {
	case distanceM <= 200:
		return 35
	case distanceM <= 400:
		return 25
	case distanceM <= 700:
		return 15
	case distanceM <= 1200:
		return 5
	default:
		return 0
	}
}

// RecommendationScore combines the review rating and the distance band
// into the final ranking score.
func RecommendationScore(rating float64, distanceM int) float64 {
	return rating*15 + float64(DistanceWeight(distanceM))
}
