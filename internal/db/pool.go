package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxRetries    = 5
	retryInterval = 2 * time.Second
)

func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= maxRetries; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				log.Println("database connected")
				if err := Migrate(ctx, pool); err != nil {
					pool.Close()
					return nil, fmt.Errorf("run migrations: %w", err)
				}
				return pool, nil
			} else {
				pool.Close()
				err = pingErr
			}
		}

		log.Printf("database connection attempt %d/%d failed: %v", attempt, maxRetries, err)
		if attempt < maxRetries {
			time.Sleep(retryInterval)
		}
	}

	return nil, fmt.Errorf("database connection failed after %d attempts: %w", maxRetries, err)
}

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so the server can run them on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id     TEXT PRIMARY KEY,
			name        TEXT NOT NULL DEFAULT '',
			handle      TEXT NOT NULL DEFAULT '',
			avatar_url  TEXT NOT NULL DEFAULT '',
			tastes      TEXT[] NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS videos (
			video_id         TEXT PRIMARY KEY,
			title            TEXT NOT NULL,
			description      TEXT NOT NULL DEFAULT '',
			tags             TEXT[] NOT NULL DEFAULT '{}',
			url              TEXT NOT NULL DEFAULT '',
			duration_seconds DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (duration_seconds >= 0),
			owner_user_id    TEXT NOT NULL,
			like_count       INTEGER NOT NULL DEFAULT 0,
			comment_count    INTEGER NOT NULL DEFAULT 0,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_tags ON videos USING GIN (tags)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_owner ON videos (owner_user_id)`,
		`CREATE TABLE IF NOT EXISTS video_interactions (
			user_id              TEXT NOT NULL,
			video_id             TEXT NOT NULL,
			watched_time_seconds DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (watched_time_seconds >= 0),
			liked                BOOLEAN NOT NULL DEFAULT FALSE,
			commented            BOOLEAN NOT NULL DEFAULT FALSE,
			shared               BOOLEAN NOT NULL DEFAULT FALSE,
			watched_complete     BOOLEAN NOT NULL DEFAULT FALSE,
			last_updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, video_id)
		)`,
		`CREATE TABLE IF NOT EXISTS video_likes (
			video_id   TEXT NOT NULL,
			user_id    TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (video_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS video_comments (
			id         BIGSERIAL PRIMARY KEY,
			video_id   TEXT NOT NULL,
			user_id    TEXT NOT NULL,
			user_name  TEXT NOT NULL DEFAULT '',
			body       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_video_comments_video ON video_comments (video_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("database migrations completed")
	return nil
}
