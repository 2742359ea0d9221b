package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"ruya-backend/internal/common/logger"
)

type Client struct {
	db *sql.DB
}

// NewClient opens the connection pool, validates it and bootstraps the schema.
func NewClient(ctx context.Context, databaseURL string) (*Client, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("empty database url")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	client := &Client{db: db}
	if err := client.initTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init tables: %w", err)
	}

	logger.Info().Msg("PostgreSQL client initialized")

	return client, nil
}

// GetDB returns the underlying pool.
func (c *Client) GetDB() *sql.DB {
	return c.db
}

// HealthCheck pings the database.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// initTables creates the tables if they do not exist. The unique constraint on
// user_id backs the upsert semantics of first-time profile writes.
func (c *Client) initTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id VARCHAR(128) PRIMARY KEY,
			choice VARCHAR(64) NOT NULL DEFAULT '',
			zodiac VARCHAR(32) NOT NULL DEFAULT '',
			interpreter_type VARCHAR(32) NOT NULL DEFAULT '',
			is_premium BOOLEAN NOT NULL DEFAULT FALSE,
			daily_usage_count INTEGER NOT NULL DEFAULT 0,
			lifetime_usage_count INTEGER NOT NULL DEFAULT 0,
			last_usage_date DATE NOT NULL DEFAULT CURRENT_DATE
		)`,

		`CREATE TABLE IF NOT EXISTS dreams (
			id UUID PRIMARY KEY,
			user_id VARCHAR(128) NOT NULL,
			title TEXT NOT NULL,
			emotion TEXT NOT NULL,
			dream_text TEXT NOT NULL,
			interpretation TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			display_time VARCHAR(50) NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_dreams_user_created ON dreams (user_id, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := c.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}

	return nil
}
