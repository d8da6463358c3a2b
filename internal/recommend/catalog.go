// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package recommend

// scoreRule awards points to a food type when the named condition flag is
// present in the expanded condition vector.
type scoreRule struct {
	flag   string
	points int
}

// scoreRules defines how each food type accumulates points from the
// condition flags. The exact point values are part of the product contract
// and must not be tuned without updating the scoring tests.
var scoreRules = map[FoodType][]scoreRule{
	SpicySoup:   {{"SPICY", 2}, {"WARM", 2}, {"SOUP", 3}},
	MildSoup:    {{"NON_SPICY", 1}, {"WARM", 2}, {"SOUP", 3}},
	MeatHeavy:   {{"HEAVY", 2}, {"DRY", 1}},
	LightMeal:   {{"LIGHT", 2}, {"DRY", 1}},
	ComfortFood: {{"WARM", 2}, {"NON_SPICY", 1}},
	RefreshMeal: {{"COOL", 2}, {"LIGHT", 1}},
	GreasyMeal:  {{"HEAVY", 2}, {"SPICY", 1}},
	QuickMeal:   {{"LIGHT", 1}, {"DRY", 1}},
}

// foodTypePriority is the final tie-break order. Lower index wins.
var foodTypePriority = []FoodType{
	SpicySoup,
	MildSoup,
	MeatHeavy,
	ComfortFood,
	GreasyMeal,
	LightMeal,
	RefreshMeal,
	QuickMeal,
}

// Attribute sets used by the tie-break chain before the priority table.
// Soup-bearing beats warm-bearing beats heavy-bearing.
var (
	hasSoup  = map[FoodType]bool{SpicySoup: true, MildSoup: true}
	hasWarm  = map[FoodType]bool{SpicySoup: true, MildSoup: true, ComfortFood: true}
	hasHeavy = map[FoodType]bool{MeatHeavy: true, GreasyMeal: true}
)

// foodTypeKeywords maps each food type to its place search keywords.
// At most the first maxSearchKeywords are used per recommendation.
var foodTypeKeywords = map[FoodType][]string{
	SpicySoup:   {"김치찌개", "짬뽕", "육개장"},
	MildSoup:    {"설렁탕", "갈비탕", "삼계탕"},
	MeatHeavy:   {"삼겹살", "갈비", "스테이크"},
	LightMeal:   {"샐러드", "포케", "샌드위치"},
	ComfortFood: {"백반", "제육볶음", "된장찌개"},
	RefreshMeal: {"냉면", "메밀", "회"},
	GreasyMeal:  {"치킨", "피자", "햄버거"},
	QuickMeal:   {"김밥", "우동", "토스트"},
}

var foodTypeLabels = map[FoodType]string{
	SpicySoup:   "매콤한 국물",
	MildSoup:    "담백한 국물",
	MeatHeavy:   "고기·든든한 식사",
	LightMeal:   "가벼운 식사",
	ComfortFood: "따뜻한 집밥",
	RefreshMeal: "개운한 음식",
	GreasyMeal:  "기름진 음식",
	QuickMeal:   "빠른 한 끼",
}

var foodTypeReasons = map[FoodType]string{
	SpicySoup:   "자극적이고 따끈한 국물이 필요한 컨디션이에요. 매콤한 국물 요리를 추천합니다!",
	MildSoup:    "따뜻하고 부드러운 국물이 당기는 컨디션이에요. 담백한 국물 요리를 추천합니다!",
	MeatHeavy:   "든든하게 배를 채우고 싶은 컨디션이에요. 고기 위주의 식사를 추천합니다!",
	LightMeal:   "가볍게 먹고 싶은 컨디션이에요. 부담 없는 한 끼를 추천합니다!",
	ComfortFood: "따뜻하고 편안한 음식이 필요한 컨디션이에요. 집밥 스타일을 추천합니다!",
	RefreshMeal: "시원하고 개운한 음식이 당기는 컨디션이에요. 상쾌한 식사를 추천합니다!",
	GreasyMeal:  "자극적이고 든든한 음식이 당기는 컨디션이에요. 기름진 요리를 추천합니다!",
	QuickMeal:   "간단하고 빠르게 해결하고 싶은 컨디션이에요. 간편한 한 끼를 추천합니다!",
}

// Keywords returns the search keywords for a food type. The returned slice
// must not be mutated.
func Keywords(ft FoodType) []string { return foodTypeKeywords[ft] }

// Label returns the display label for a food type.
func Label(ft FoodType) string { return foodTypeLabels[ft] }

// Reason returns the user-facing explanation for a food type.
func Reason(ft FoodType) string { return foodTypeReasons[ft] }
