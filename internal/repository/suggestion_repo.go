package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SuggestionRepo struct {
	pool *pgxpool.Pool
}

func NewSuggestionRepo(pool *pgxpool.Pool) *SuggestionRepo {
	return &SuggestionRepo{pool: pool}
}

// CountRecentByFingerprint returns how many suggestions the identity has
// filed since the given time. Backs the daily suggestion cap.
func (r *SuggestionRepo) CountRecentByFingerprint(ctx context.Context, fingerprintHash string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM channel_suggestions
		WHERE fingerprint_hash = $1 AND created_at >= $2`

	var count int
	err := r.pool.QueryRow(ctx, query, fingerprintHash, since).Scan(&count)
	return count, err
}
