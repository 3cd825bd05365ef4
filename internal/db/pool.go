package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connection retry schedule: the survey container often comes up before
// its database does, so the first attempts back off instead of failing.
const (
	connectAttempts = 4
	initialBackoff  = time.Second
)

// Fallbacks when the configured pool sizing is absent or nonsensical.
const (
	defaultMaxConns = 16
	defaultMinConns = 4
)

// buildPoolConfig parses the database URL and applies the pool sizing.
// Non-positive sizes fall back to the defaults; a min above max is
// clamped down to max.
func buildPoolConfig(databaseURL string, maxConns, minConns int) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	if minConns <= 0 {
		minConns = defaultMinConns
	}
	if minConns > maxConns {
		minConns = maxConns
	}

	cfg.MaxConns = int32(maxConns)
	cfg.MinConns = int32(minConns)
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute
	return cfg, nil
}

// NewPool connects to PostgreSQL with the given pool sizing, retrying with
// doubling backoff while the database finishes starting.
func NewPool(ctx context.Context, databaseURL string, maxConns, minConns int) (*pgxpool.Pool, error) {
	cfg, err := buildPoolConfig(databaseURL, maxConns, minConns)
	if err != nil {
		return nil, err
	}

	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				log.Printf("postgres: connected (pool %d-%d conns)", cfg.MinConns, cfg.MaxConns)
				return pool, nil
			} else {
				pool.Close()
				err = pingErr
			}
		}

		if attempt >= connectAttempts {
			return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", connectAttempts, err)
		}

		log.Printf("postgres: attempt %d/%d failed, retrying in %s: %v", attempt, connectAttempts, backoff, err)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}
}
