package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anto1/ds-survey/internal/model"
)

// ErrDuplicateDay is returned when the storage-level unique index on
// (fingerprint_hash, submission_day) rejects a second write for the same
// identity on the same UTC day. It closes the cooldown check-then-write
// race for concurrent identical requests.
var ErrDuplicateDay = errors.New("submission already exists for this identity today")

type SubmissionRepo struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepo(pool *pgxpool.Pool) *SubmissionRepo {
	return &SubmissionRepo{pool: pool}
}

// ExistsRecent reports whether the identity already has a submission since
// the given time (the rolling cooldown window).
func (r *SubmissionRepo) ExistsRecent(ctx context.Context, fingerprintHash string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM submissions
			WHERE fingerprint_hash = $1 AND created_at >= $2
		)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, fingerprintHash, since).Scan(&exists)
	return exists, err
}

// Create writes one immutable submission row. A unique violation on the
// per-day index surfaces as ErrDuplicateDay.
func (r *SubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	query := `
		INSERT INTO submissions (
			id, fingerprint_hash, known_channels, watched_channels,
			profession, workplace, user_agent, language, referrer
		)
		VALUES ($1, $2, $3::uuid[], $4::uuid[],
		        NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))`

	_, err := r.pool.Exec(ctx, query,
		sub.ID, sub.FingerprintHash, sub.KnownChannels, sub.WatchedChannels,
		sub.Profession, sub.Workplace, sub.UserAgent, sub.Language, sub.Referrer)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateDay
		}
		return err
	}
	return nil
}

// Stats computes the aggregate dashboard view in one pass over the store.
func (r *SubmissionRepo) Stats(ctx context.Context) (*model.StatsResponse, error) {
	stats := &model.StatsResponse{
		ByProfession: make(map[string]int),
		ByWorkplace:  make(map[string]int),
	}

	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&stats.TotalSubmissions); err != nil {
		return nil, err
	}

	if err := r.groupCount(ctx, `
		SELECT COALESCE(profession, 'unspecified'), COUNT(*)
		FROM submissions GROUP BY 1 ORDER BY 2 DESC`, stats.ByProfession); err != nil {
		return nil, err
	}

	if err := r.groupCount(ctx, `
		SELECT COALESCE(workplace, 'unspecified'), COUNT(*)
		FROM submissions GROUP BY 1 ORDER BY 2 DESC`, stats.ByWorkplace); err != nil {
		return nil, err
	}

	tallyQuery := `
		SELECT c.id::text, c.name, COALESCE(k.cnt, 0), COALESCE(w.cnt, 0)
		FROM channels c
		LEFT JOIN (
			SELECT unnest(known_channels) AS id, COUNT(*) AS cnt
			FROM submissions GROUP BY 1
		) k ON k.id = c.id
		LEFT JOIN (
			SELECT unnest(watched_channels) AS id, COUNT(*) AS cnt
			FROM submissions GROUP BY 1
		) w ON w.id = c.id
		WHERE c.status = 'approved'
		ORDER BY COALESCE(k.cnt, 0) DESC, c.name ASC`

	rows, err := r.pool.Query(ctx, tallyQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t model.ChannelTally
		if err := rows.Scan(&t.ChannelID, &t.Name, &t.Known, &t.Watched); err != nil {
			return nil, err
		}
		stats.ChannelTallies = append(stats.ChannelTallies, t)
	}
	return stats, rows.Err()
}

func (r *SubmissionRepo) groupCount(ctx context.Context, query string, into map[string]int) error {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		into[key] = count
	}
	return rows.Err()
}

// ListAll returns every submission, newest first, for the CSV export.
func (r *SubmissionRepo) ListAll(ctx context.Context) ([]model.Submission, error) {
	query := `
		SELECT id::text, fingerprint_hash, known_channels::text[], watched_channels::text[],
		       COALESCE(profession, ''), COALESCE(workplace, ''),
		       COALESCE(user_agent, ''), COALESCE(language, ''), COALESCE(referrer, ''),
		       created_at
		FROM submissions
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(
			&s.ID, &s.FingerprintHash, &s.KnownChannels, &s.WatchedChannels,
			&s.Profession, &s.Workplace, &s.UserAgent, &s.Language, &s.Referrer,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
