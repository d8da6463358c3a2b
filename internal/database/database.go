// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

// Package database provides the DuckDB-backed restaurant store used by the
// rule-based recommendation path. It owns the schema, the condition rule
// seed data, and the scoring query that ranks restaurants by keyword
// matches, rating, and distance.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/gastrograph/gastrograph/internal/config"
)

// DB wraps the DuckDB connection pool. Safe for concurrent use.
type DB struct {
	conn   *sql.DB
	logger zerolog.Logger
}

// New opens the database, applies the schema, and seeds the condition
// rules when configured. An empty path opens an in-memory database.
func New(cfg *config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	connStr := cfg.Path
	if connStr != "" {
		connStr = fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
			cfg.Path, threads, cfg.MaxMemory)
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	db := &DB{
		conn:   conn,
		logger: logger.With().Str("component", "database").Logger(),
	}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	if cfg.SeedRules {
		if err := db.seedConditionRules(context.Background()); err != nil {
			conn.Close()
			return nil, fmt.Errorf("seed condition rules: %w", err)
		}
	}

	db.logger.Info().Str("path", cfg.Path).Msg("Database ready")
	return db, nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies database connectivity.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

const schema = `
CREATE SEQUENCE IF NOT EXISTS restaurants_id_seq;

CREATE TABLE IF NOT EXISTS restaurants (
    id INTEGER PRIMARY KEY DEFAULT nextval('restaurants_id_seq'),
    name VARCHAR NOT NULL,
    category VARCHAR,
    address VARCHAR,
    road_address VARCHAR,
    latitude DOUBLE NOT NULL,
    longitude DOUBLE NOT NULL,
    phone VARCHAR,
    rating DECIMAL(2, 1),
    review_count INTEGER DEFAULT 0,
    naver_map_url VARCHAR,
    image_url VARCHAR,
    status VARCHAR DEFAULT 'OPEN',
    created_at TIMESTAMP DEFAULT now(),
    updated_at TIMESTAMP DEFAULT now()
);

CREATE SEQUENCE IF NOT EXISTS restaurant_keywords_id_seq;

CREATE TABLE IF NOT EXISTS restaurant_keywords (
    id INTEGER PRIMARY KEY DEFAULT nextval('restaurant_keywords_id_seq'),
    restaurant_id INTEGER NOT NULL,
    keyword VARCHAR NOT NULL,
    count INTEGER DEFAULT 1,
    sentiment VARCHAR DEFAULT 'positive',
    updated_at TIMESTAMP DEFAULT now(),
    UNIQUE (restaurant_id, keyword)
);

CREATE SEQUENCE IF NOT EXISTS condition_rules_id_seq;

CREATE TABLE IF NOT EXISTS condition_rules (
    id INTEGER PRIMARY KEY DEFAULT nextval('condition_rules_id_seq'),
    condition_code VARCHAR NOT NULL,
    detail_code VARCHAR NOT NULL,
    target_keyword VARCHAR NOT NULL,
    weight DECIMAL(3, 2) DEFAULT 1.0,
    created_at TIMESTAMP DEFAULT now(),
    UNIQUE (condition_code, detail_code, target_keyword)
);

CREATE INDEX IF NOT EXISTS idx_restaurants_location ON restaurants (latitude, longitude);
CREATE INDEX IF NOT EXISTS idx_restaurants_status ON restaurants (status);
CREATE INDEX IF NOT EXISTS idx_keywords_restaurant ON restaurant_keywords (restaurant_id);
CREATE INDEX IF NOT EXISTS idx_keywords_keyword ON restaurant_keywords (keyword);
CREATE INDEX IF NOT EXISTS idx_rules_condition ON condition_rules (condition_code, detail_code);
`

func (db *DB) initSchema() error {
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
