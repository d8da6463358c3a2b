// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package recommend

// Condition is one selectable entry in the named-condition catalog, with
// its detail options. This catalog drives the rule-based recommendation
// path and the conditions listing endpoint.
type Condition struct {
	Code    string            `json:"code"`
	Label   string            `json:"label"`
	Details []ConditionDetail `json:"details"`
}

// ConditionDetail is a refinement option under a condition.
type ConditionDetail struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type conditionKey struct {
	condition string
	detail    string
}

// conditionCatalog lists the named conditions and their detail options in
// display order.
var conditionCatalog = []Condition{
	{
		Code:  "tired",
		Label: "😫 피곤해요",
		Details: []ConditionDetail{
			{Code: "soup", Label: "🍜 뜨끈한 국물"},
			{Code: "meat", Label: "🍖 고기로 충전"},
			{Code: "sweet", Label: "🍰 달달한 보상"},
			{Code: "light_recover", Label: "🥗 가볍게 회복"},
		},
	},
	{
		Code:  "hangover",
		Label: "🍺 숙취있어요",
		Details: []ConditionDetail{
			{Code: "hot_soup", Label: "🍲 뜨끈한 해장"},
			{Code: "cool", Label: "🍜 시원한 것"},
			{Code: "mild", Label: "🥣 속 편한 것"},
			{Code: "spicy_soup", Label: "🌶️ 얼큰한 것"},
		},
	},
	{
		Code:  "stress",
		Label: "😤 스트레스",
		Details: []ConditionDetail{
			{Code: "spicy", Label: "🔥 매운 걸로"},
			{Code: "sweet_stress", Label: "🍫 달달한 걸로"},
			{Code: "meat_stress", Label: "🥩 고기가 땡겨"},
			{Code: "crispy", Label: "🍗 바삭한 걸로"},
		},
	},
	{
		Code:  "cold",
		Label: "🤧 감기기운",
		Details: []ConditionDetail{
			{Code: "warm_soup", Label: "🍲 따뜻한 국물"},
			{Code: "soft", Label: "🥣 부드러운 것"},
			{Code: "vitamin", Label: "🍊 비타민 충전"},
			{Code: "healthy", Label: "🐔 몸보신"},
		},
	},
	{
		Code:  "hearty",
		Label: "💪 든든하게",
		Details: []ConditionDetail{
			{Code: "meat_hearty", Label: "🥩 고기"},
			{Code: "rice_soup", Label: "🍚 밥 + 국"},
			{Code: "noodle", Label: "🍝 면"},
			{Code: "snack", Label: "🍱 분식"},
		},
	},
	{
		Code:  "light",
		Label: "🥗 가볍게",
		Details: []ConditionDetail{
			{Code: "salad", Label: "🥗 샐러드"},
			{Code: "korean_light", Label: "🥬 담백한 한식"},
			{Code: "simple", Label: "🥪 간단히"},
			{Code: "light_soup", Label: "🥣 국물 있게"},
		},
	},
}

// conditionMessages are the user-facing messages per condition/detail pair.
var conditionMessages = map[conditionKey]string{
	{"tired", "soup"}:            "피곤할 때 뜨끈한 국물 한 그릇이 최고죠! 🍜",
	{"tired", "meat"}:            "기운 없을 땐 고기로 충전하세요! 🍖",
	{"tired", "sweet"}:           "달달한 보상 어떠세요? 🍰",
	{"tired", "light_recover"}:   "가볍게 회복하는 것도 좋아요! 🥗",
	{"hangover", "hot_soup"}:     "해장엔 뜨끈한 국물이 최고! 🍲",
	{"hangover", "cool"}:         "속이 안 좋을 땐 시원한 게 좋죠! 🍜",
	{"hangover", "mild"}:         "속 편한 음식으로 준비했어요! 🥣",
	{"hangover", "spicy_soup"}:   "얼큰하게 해장하세요! 🌶️",
	{"stress", "spicy"}:          "매운 걸로 스트레스 날려버려요! 🔥",
	{"stress", "sweet_stress"}:   "달달한 걸로 기분 전환! 🍫",
	{"stress", "meat_stress"}:    "고기 앞에서 스트레스는 없죠! 🥩",
	{"stress", "crispy"}:         "바삭한 튀김 어때요? 🍗",
	{"cold", "warm_soup"}:        "감기엔 따뜻한 국물이 약이에요! 🍲",
	{"cold", "soft"}:             "부드러운 음식으로 준비했어요! 🥣",
	{"cold", "vitamin"}:          "비타민 충전하세요! 🍊",
	{"cold", "healthy"}:          "몸보신 음식 추천해요! 🐔",
	{"hearty", "meat_hearty"}:    "푸짐한 고기로 든든하게! 🥩",
	{"hearty", "rice_soup"}:      "국밥 한 그릇이면 든든해요! 🍚",
	{"hearty", "noodle"}:         "면 요리로 든든하게! 🍝",
	{"hearty", "snack"}:          "분식으로 든든하게 채워요! 🍱",
	{"light", "salad"}:           "가볍게 샐러드 어때요? 🥗",
	{"light", "korean_light"}:    "담백한 한식 추천해요! 🥬",
	{"light", "simple"}:          "간단하게 한 끼! 🥪",
	{"light", "light_soup"}:      "맑은 국물로 가볍게! 🥣",
}

// defaultConditionMessage is returned for rule pairs without a dedicated
// message.
const defaultConditionMessage = "맛있는 식사 되세요! 🍽️"

// conditionSearchKeywords maps quick-recommendation condition keys to place
// search keywords. At most the first maxConditionKeywords are searched.
var conditionSearchKeywords = map[string][]string{
	"fatigue_1":  {"삼계탕", "보양식", "국밥", "설렁탕"},
	"fatigue_2":  {"스테이크", "파스타", "양식", "분위기좋은"},
	"fatigue_3":  {"죽", "우동", "칼국수", "속편한"},
	"hangover_1": {"해장국", "콩나물국밥", "북어국", "죽"},
	"hangover_2": {"짬뽕", "육개장", "순두부", "얼큰한"},
	"hangover_3": {"냉면", "막국수", "시원한"},
	"stress_1":   {"마라탕", "매운", "불닭", "닭발"},
	"stress_2":   {"카페", "디저트", "케이크", "와플"},
	"stress_3":   {"삼겹살", "고기", "치킨", "피자"},
	"cold_1":     {"차", "죽", "따뜻한"},
	"cold_2":     {"삼계탕", "칼국수", "뜨끈한"},
	"cold_3":     {"감자탕", "육개장", "국물"},
	"diet_1":     {"샐러드", "포케", "저칼로리"},
	"diet_2":     {"닭가슴살", "단백질", "건강식"},
	"diet_3":     {"한정식", "정식", "건강"},
	"light_1":    {"포케", "샐러드", "아사이볼"},
	"light_2":    {"쌀국수", "소바", "면요리"},
	"light_3":    {"샌드위치", "베이글", "브런치"},
}

// ConditionCatalog returns the named-condition catalog in display order.
// The returned slice must not be mutated.
func ConditionCatalog() []Condition { return conditionCatalog }

// KnownConditionPair reports whether the condition/detail pair exists in
// the catalog.
func KnownConditionPair(condition, detail string) bool {
	for _, c := range conditionCatalog {
		if c.Code != condition {
			continue
		}
		for _, d := range c.Details {
			if d.Code == detail {
				return true
			}
		}
	}
	return false
}

// ConditionMessage returns the user-facing message for a condition/detail
// pair, falling back to a generic message for unknown pairs.
func ConditionMessage(condition, detail string) string {
	if msg, ok := conditionMessages[conditionKey{condition, detail}]; ok {
		return msg
	}
	return defaultConditionMessage
}

// ConditionKeywords returns the search keywords for a quick-recommendation
// condition key, or nil when the key is unknown.
func ConditionKeywords(key string) []string { return conditionSearchKeywords[key] }
