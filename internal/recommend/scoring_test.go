// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package recommend

import "testing"

func TestComputeFoodTypeScoresAllSoupWarm(t *testing.T) {
	// spicy + warm + soup hits every SPICY_SOUP rule.
	scores := ComputeFoodTypeScores(ConditionVector{Spicy: true, Warm: true, Soup: true})
	if scores[SpicySoup] != 7 {
		t.Errorf("SpicySoup score = %d, want 7", scores[SpicySoup])
	}
	if scores[MildSoup] != 5 {
		t.Errorf("MildSoup score = %d, want 5", scores[MildSoup])
	}
	// light=false activates the HEAVY flag, so MeatHeavy still scores
	// its HEAVY rule even for a soup vector.
	if scores[MeatHeavy] != 2 {
		t.Errorf("MeatHeavy score = %d, want 2", scores[MeatHeavy])
	}
}

func TestComputeFoodTypeScoresCoversAllTypes(t *testing.T) {
	scores := ComputeFoodTypeScores(ConditionVector{})
	if len(scores) != 8 {
		t.Fatalf("expected scores for all 8 food types, got %d", len(scores))
	}
	for _, ft := range foodTypePriority {
		if _, ok := scores[ft]; !ok {
			t.Errorf("missing score for %s", ft)
		}
	}
}

func TestSelectFoodTypesAllCombinations(t *testing.T) {
	ft := func(f FoodType) *FoodType { return &f }

	tests := []struct {
		name      string
		vector    ConditionVector
		primary   FoodType
		secondary *FoodType
	}{
		{"none", ConditionVector{}, MeatHeavy, ft(GreasyMeal)},
		{"soup", ConditionVector{Soup: true}, MildSoup, ft(SpicySoup)},
		{"light", ConditionVector{Light: true}, LightMeal, ft(RefreshMeal)},
		{"light_soup", ConditionVector{Light: true, Soup: true}, MildSoup, ft(SpicySoup)},
		{"warm", ConditionVector{Warm: true}, MildSoup, ft(ComfortFood)},
		{"warm_soup", ConditionVector{Warm: true, Soup: true}, MildSoup, ft(SpicySoup)},
		{"warm_light", ConditionVector{Warm: true, Light: true}, MildSoup, ft(ComfortFood)},
		{"warm_light_soup", ConditionVector{Warm: true, Light: true, Soup: true}, MildSoup, ft(SpicySoup)},
		{"spicy", ConditionVector{Spicy: true}, MeatHeavy, ft(GreasyMeal)},
		{"spicy_soup", ConditionVector{Spicy: true, Soup: true}, SpicySoup, ft(MildSoup)},
		{"spicy_light", ConditionVector{Spicy: true, Light: true}, LightMeal, ft(RefreshMeal)},
		{"spicy_light_soup", ConditionVector{Spicy: true, Light: true, Soup: true}, SpicySoup, ft(MildSoup)},
		{"spicy_warm", ConditionVector{Spicy: true, Warm: true}, SpicySoup, ft(MeatHeavy)},
		{"spicy_warm_soup", ConditionVector{Spicy: true, Warm: true, Soup: true}, SpicySoup, ft(MildSoup)},
		{"spicy_warm_light", ConditionVector{Spicy: true, Warm: true, Light: true}, SpicySoup, ft(LightMeal)},
		{"all", ConditionVector{Spicy: true, Warm: true, Light: true, Soup: true}, SpicySoup, ft(MildSoup)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, secondary := SelectFoodTypes(ComputeFoodTypeScores(tt.vector))
			if primary != tt.primary {
				t.Errorf("primary = %s, want %s", primary, tt.primary)
			}
			switch {
			case tt.secondary == nil && secondary != nil:
				t.Errorf("secondary = %s, want nil", *secondary)
			case tt.secondary != nil && secondary == nil:
				t.Errorf("secondary = nil, want %s", *tt.secondary)
			case tt.secondary != nil && *secondary != *tt.secondary:
				t.Errorf("secondary = %s, want %s", *secondary, *tt.secondary)
			}
		})
	}
}

func TestSelectFoodTypesSoupBeatsPriority(t *testing.T) {
	// Tie between a soup-bearing and a heavy-bearing type resolves to
	// the soup-bearing one.
	scores := map[FoodType]int{
		SpicySoup: 0, MildSoup: 3, MeatHeavy: 3, LightMeal: 0,
		ComfortFood: 0, RefreshMeal: 0, GreasyMeal: 0, QuickMeal: 0,
	}
	primary, _ := SelectFoodTypes(scores)
	if primary != MildSoup {
		t.Errorf("primary = %s, want %s", primary, MildSoup)
	}
}

func TestSelectFoodTypesPriorityBreaksSoupTie(t *testing.T) {
	// SpicySoup and MildSoup are both soup-bearing and warm-bearing, so
	// with equal max scores the fixed priority order decides.
	scores := map[FoodType]int{
		SpicySoup: 5, MildSoup: 5, MeatHeavy: 0, LightMeal: 0,
		ComfortFood: 0, RefreshMeal: 0, GreasyMeal: 0, QuickMeal: 0,
	}
	primary, secondary := SelectFoodTypes(scores)
	if primary != SpicySoup {
		t.Errorf("primary = %s, want %s", primary, SpicySoup)
	}
	if secondary == nil || *secondary != MildSoup {
		t.Errorf("secondary = %v, want %s", secondary, MildSoup)
	}
}

func TestSelectFoodTypesWarmBeatsHeavy(t *testing.T) {
	scores := map[FoodType]int{
		SpicySoup: 0, MildSoup: 0, MeatHeavy: 2, LightMeal: 0,
		ComfortFood: 2, RefreshMeal: 0, GreasyMeal: 0, QuickMeal: 0,
	}
	primary, _ := SelectFoodTypes(scores)
	if primary != ComfortFood {
		t.Errorf("primary = %s, want %s", primary, ComfortFood)
	}
}

func TestSelectFoodTypesSecondaryRequiresPositiveScore(t *testing.T) {
	scores := map[FoodType]int{
		SpicySoup: 0, MildSoup: 0, MeatHeavy: 1, LightMeal: 0,
		ComfortFood: 0, RefreshMeal: 0, GreasyMeal: 0, QuickMeal: 0,
	}
	primary, secondary := SelectFoodTypes(scores)
	if primary != MeatHeavy {
		t.Errorf("primary = %s, want %s", primary, MeatHeavy)
	}
	if secondary != nil {
		t.Errorf("secondary = %s, want nil", *secondary)
	}
}

func TestDistanceWeightBoundaries(t *testing.T) {
	tests := []struct {
		distance int
		want     int
	}{
		{0, 35},
		{200, 35},
		{201, 25},
		{400, 25},
		{401, 15},
		{700, 15},
		{701, 5},
		{1200, 5},
		{1201, 0},
		{5000, 0},
	}
	for _, tt := range tests {
		if got := DistanceWeight(tt.distance); got != tt.want {
			t.Errorf("DistanceWeight(%d) = %d, want %d", tt.distance, got, tt.want)
		}
	}
}

func TestRecommendationScore(t *testing.T) {
	if got := RecommendationScore(4.0, 150); got != 95.0 {
		t.Errorf("RecommendationScore(4.0, 150) = %v, want 95.0", got)
	}
	if got := RecommendationScore(0.0, 1500); got != 0.0 {
		t.Errorf("RecommendationScore(0.0, 1500) = %v, want 0.0", got)
	}
	if got := RecommendationScore(5.0, 200); got != 110.0 {
		t.Errorf("RecommendationScore(5.0, 200) = %v, want 110.0", got)
	}
}

func TestFoodTypeValid(t *testing.T) {
	for _, ft := range foodTypePriority {
		if !ft.Valid() {
			t.Errorf("%s should be valid", ft)
		}
	}
	if FoodType("PASTA").Valid() {
		t.Error("PASTA should not be valid")
	}
}
