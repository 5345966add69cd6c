package mysql

import (
	"context"
	"database/sql"
	"time"
)

// RateLimitStore persists request counts in minute buckets keyed by
// (identifier, endpoint, window_start). A sliding-window count is the sum of
// the buckets inside the trailing interval.
type RateLimitStore struct {
	db *sql.DB
}

func NewRateLimitStore(db *sql.DB) *RateLimitStore {
	return &RateLimitStore{db: db}
}

func (s *RateLimitStore) CountSince(ctx context.Context, identifier, endpoint string, since time.Time) (int64, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT COALESCE(SUM(request_count), 0)
        FROM rate_limit_windows
        WHERE identifier = ? AND endpoint = ? AND window_start > ?
    `, identifier, endpoint, since)

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *RateLimitStore) Increment(ctx context.Context, identifier, endpoint string, windowStart time.Time) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO rate_limit_windows (identifier, endpoint, window_start, request_count)
        VALUES (?, ?, ?, 1)
        ON DUPLICATE KEY UPDATE request_count = request_count + 1
    `, identifier, endpoint, windowStart)
	return err
}

func (s *RateLimitStore) DeleteBefore(ctx context.Context, cutoff time.Time) error {
	_, err := s.db.ExecContext(ctx, `
        DELETE FROM rate_limit_windows WHERE window_start < ?
    `, cutoff)
	return err
}
