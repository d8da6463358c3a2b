// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gastrograph/gastrograph/internal/metrics"
)

// ConditionRule maps a condition/detail pair to a review keyword with a
// match weight.
type ConditionRule struct {
	ConditionCode string  `json:"condition_code"`
	DetailCode    string  `json:"detail_code"`
	TargetKeyword string  `json:"target_keyword"`
	Weight        float64 `json:"weight"`
}

// conditionRuleSeed is the initial condition-to-keyword mapping. Rows are
// grouped by condition for readability; order is not significant.
var conditionRuleSeed = []ConditionRule{
	{"tired", "soup", "뜨끈", 1.2},
	{"tired", "soup", "든든", 1.0},
	{"tired", "soup", "진한", 1.0},
	{"tired", "soup", "국물", 1.0},
	{"tired", "meat", "푸짐", 1.2},
	{"tired", "meat", "고소", 1.0},
	{"tired", "meat", "육즙", 1.0},
	{"tired", "sweet", "달달", 1.2},
	{"tired", "sweet", "디저트", 1.0},
	{"tired", "light_recover", "담백", 1.0},
	{"tired", "light_recover", "건강", 1.0},

	{"hangover", "hot_soup", "해장", 2.0},
	{"hangover", "hot_soup", "속풀이", 1.5},
	{"hangover", "hot_soup", "얼큰", 1.3},
	{"hangover", "hot_soup", "뜨끈", 1.2},
	{"hangover", "cool", "시원", 1.5},
	{"hangover", "cool", "냉면", 1.2},
	{"hangover", "mild", "부드러운", 1.2},
	{"hangover", "mild", "속편한", 1.3},
	{"hangover", "spicy_soup", "얼큰", 1.5},
	{"hangover", "spicy_soup", "칼칼", 1.3},

	{"stress", "spicy", "맵다", 1.5},
	{"stress", "spicy", "매운", 1.5},
	{"stress", "spicy", "화끈", 1.2},
	{"stress", "sweet_stress", "달달", 1.3},
	{"stress", "sweet_stress", "달콤", 1.2},
	{"stress", "meat_stress", "고기", 1.2},
	{"stress", "meat_stress", "푸짐", 1.0},
	{"stress", "crispy", "바삭", 1.3},
	{"stress", "crispy", "튀김", 1.2},

	{"cold", "warm_soup", "따뜻", 1.3},
	{"cold", "warm_soup", "뜨끈", 1.2},
	{"cold", "warm_soup", "보양", 1.5},
	{"cold", "soft", "부드러운", 1.2},
	{"cold", "soft", "죽", 1.3},
	{"cold", "vitamin", "건강", 1.2},
	{"cold", "vitamin", "비타민", 1.3},
	{"cold", "healthy", "보양", 1.5},
	{"cold", "healthy", "기력", 1.3},

	{"hearty", "meat_hearty", "푸짐", 1.3},
	{"hearty", "meat_hearty", "고기", 1.2},
	{"hearty", "meat_hearty", "든든", 1.2},
	{"hearty", "rice_soup", "국밥", 1.3},
	{"hearty", "rice_soup", "든든", 1.2},
	{"hearty", "noodle", "면", 1.0},
	{"hearty", "noodle", "푸짐", 1.2},
	{"hearty", "snack", "분식", 1.0},
	{"hearty", "snack", "가성비", 1.2},

	{"light", "salad", "담백", 1.2},
	{"light", "salad", "건강", 1.2},
	{"light", "salad", "샐러드", 1.3},
	{"light", "korean_light", "담백", 1.2},
	{"light", "korean_light", "깔끔", 1.0},
	{"light", "simple", "간단", 1.2},
	{"light", "simple", "가벼운", 1.2},
	{"light", "light_soup", "맑은", 1.2},
	{"light", "light_soup", "깔끔", 1.0},
}

// seedConditionRules inserts the rule seed once. Existing rows win; the
// seed never overwrites operator changes.
func (db *DB) seedConditionRules(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM condition_rules`).Scan(&count); err != nil {
		return fmt.Errorf("count condition rules: %w", err)
	}
	if count > 0 {
		db.logger.Debug().Int("existing", count).Msg("Condition rules already present, skipping seed")
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO condition_rules (condition_code, detail_code, target_keyword, weight)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range conditionRuleSeed {
		if _, err := stmt.ExecContext(ctx, r.ConditionCode, r.DetailCode, r.TargetKeyword, r.Weight); err != nil {
			return fmt.Errorf("insert rule %s/%s/%s: %w", r.ConditionCode, r.DetailCode, r.TargetKeyword, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	db.logger.Info().Int("rules", len(conditionRuleSeed)).Msg("Seeded condition rules")
	return nil
}

// RulesFor returns the rules for a condition/detail pair. An empty result
// means the pair is unknown.
func (db *DB) RulesFor(ctx context.Context, condition, detail string) ([]ConditionRule, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT condition_code, detail_code, target_keyword, weight
		FROM condition_rules
		WHERE condition_code = ? AND detail_code = ?`,
		condition, detail)
	metrics.RecordDBQuery("rules_for", start, err)
	if err != nil {
		return nil, fmt.Errorf("query rules for %s/%s: %w", condition, detail, err)
	}
	defer rows.Close()

	var rules []ConditionRule
	for rows.Next() {
		var r ConditionRule
		if err := rows.Scan(&r.ConditionCode, &r.DetailCode, &r.TargetKeyword, &r.Weight); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}
	return rules, nil
}
