package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anto1/ds-survey/internal/model"
)

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

// ListByStatus returns all channels with the given status, ordered by name.
func (r *ChannelRepo) ListByStatus(ctx context.Context, status string) ([]model.Channel, error) {
	query := `
		SELECT id::text, name, slug, COALESCE(youtube_url, ''), status, created_at
		FROM channels
		WHERE status = $1
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []model.Channel
	for rows.Next() {
		var ch model.Channel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Slug, &ch.YouTubeURL, &ch.Status, &ch.CreatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// ExistsBySlugOrURL reports whether any channel already carries the slug or
// the exact URL. An empty url only matches on slug.
func (r *ChannelRepo) ExistsBySlugOrURL(ctx context.Context, slug, url string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM channels
			WHERE slug = $1 OR ($2 <> '' AND youtube_url = $2)
		)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, slug, url).Scan(&exists)
	return exists, err
}

// CreateWithSuggestion inserts the pending channel and its suggestion audit
// row in one transaction, so a rejection queue entry never appears without
// its audit trail.
func (r *ChannelRepo) CreateWithSuggestion(ctx context.Context, ch *model.Channel, sug *model.ChannelSuggestion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO channels (id, name, slug, youtube_url, status)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)`,
		ch.ID, ch.Name, ch.Slug, ch.YouTubeURL, ch.Status)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO channel_suggestions (id, name, youtube_url, note, fingerprint_hash)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)`,
		sug.ID, sug.Name, sug.YouTubeURL, sug.Note, sug.FingerprintHash)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Approve flips a channel to approved. Idempotent: approving an already
// approved channel is a no-op that still reports success. Returns false
// only when no channel has the id.
func (r *ChannelRepo) Approve(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE channels SET status = $1 WHERE id = $2`,
		model.ChannelApproved, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete hard-deletes a channel. The suggestion audit trail is untouched.
func (r *ChannelRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM channels WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ExistingIDs returns the subset of ids that reference a live channel row.
func (r *ChannelRepo) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id::text FROM channels WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

// ListPending returns the moderation queue: pending channels, newest first,
// each with the latest suggestion note submitted under the same name.
func (r *ChannelRepo) ListPending(ctx context.Context) ([]model.PendingChannel, error) {
	query := `
		SELECT c.id::text, c.name, c.slug, COALESCE(c.youtube_url, ''), c.status, c.created_at,
		       COALESCE(s.note, '')
		FROM channels c
		LEFT JOIN LATERAL (
			SELECT note FROM channel_suggestions
			WHERE name = c.name
			ORDER BY created_at DESC
			LIMIT 1
		) s ON true
		WHERE c.status = $1
		ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query, model.ChannelPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []model.PendingChannel
	for rows.Next() {
		var pc model.PendingChannel
		if err := rows.Scan(&pc.ID, &pc.Name, &pc.Slug, &pc.YouTubeURL, &pc.Status, &pc.CreatedAt, &pc.Note); err != nil {
			return nil, err
		}
		pending = append(pending, pc)
	}
	return pending, rows.Err()
}

// CountByStatus returns how many channels are pending and approved.
func (r *ChannelRepo) CountByStatus(ctx context.Context) (pending, approved int, err error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending')  AS pending,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved
		FROM channels`

	err = r.pool.QueryRow(ctx, query).Scan(&pending, &approved)
	return pending, approved, err
}
