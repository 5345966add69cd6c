package ratelimit

import (
	"context"
	"errors"
	"time"
)

var ErrLimitExceeded = errors.New("rate limit exceeded")

// Window is one persisted counting bucket for an (identifier, endpoint) pair.
type Window struct {
	Identifier   string
	Endpoint     string
	WindowStart  time.Time
	RequestCount int64
}

type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Store is the shared counter backing the authoritative limiter. Counting and
// incrementing are separate calls, so enforcement is best-effort: concurrent
// checks can transiently overshoot the limit by a small bounded margin.
type Store interface {
	CountSince(ctx context.Context, identifier, endpoint string, since time.Time) (int64, error)
	Increment(ctx context.Context, identifier, endpoint string, windowStart time.Time) error
	DeleteBefore(ctx context.Context, cutoff time.Time) error
}
