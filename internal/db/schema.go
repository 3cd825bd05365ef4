package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates all tables, indexes, and triggers needed by the
// application. Safe to call on every startup - uses IF NOT EXISTS.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const schema = `
-- Channels listed in the survey. Suggested channels enter as 'pending'
-- and only moderation flips them to 'approved'.
CREATE TABLE IF NOT EXISTS channels (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL,
    slug        TEXT NOT NULL UNIQUE,
    youtube_url TEXT,
    status      TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved')),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_channels_status ON channels(status);
CREATE INDEX IF NOT EXISTS idx_channels_youtube_url ON channels(youtube_url);

-- Append-only audit trail of suggestion intents. Never mutated; survives
-- rejection of the channel it spawned.
CREATE TABLE IF NOT EXISTS channel_suggestions (
    id               UUID PRIMARY KEY,
    name             TEXT NOT NULL,
    youtube_url      TEXT,
    note             TEXT,
    fingerprint_hash TEXT NOT NULL,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_suggestions_fingerprint
    ON channel_suggestions(fingerprint_hash, created_at);

-- One immutable row per accepted survey response. submission_day backs the
-- unique index that closes the cooldown check-then-write race at the
-- storage layer (UTC calendar-day granularity).
CREATE TABLE IF NOT EXISTS submissions (
    id               UUID PRIMARY KEY,
    fingerprint_hash TEXT NOT NULL,
    known_channels   UUID[] NOT NULL,
    watched_channels UUID[] NOT NULL,
    profession       TEXT,
    workplace        TEXT,
    user_agent       TEXT,
    language         TEXT,
    referrer         TEXT,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    submission_day   DATE GENERATED ALWAYS AS (((created_at AT TIME ZONE 'UTC'))::date) STORED,
    UNIQUE (fingerprint_hash, submission_day)
);

CREATE INDEX IF NOT EXISTS idx_submissions_fingerprint
    ON submissions(fingerprint_hash, created_at);

-- Notify the stats worker on every accepted submission.
CREATE OR REPLACE FUNCTION notify_submission_change() RETURNS trigger AS $$
BEGIN
    PERFORM pg_notify('submission_changes', NEW.id::text);
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS submissions_notify ON submissions;
CREATE TRIGGER submissions_notify
    AFTER INSERT ON submissions
    FOR EACH ROW EXECUTE FUNCTION notify_submission_change();
`
