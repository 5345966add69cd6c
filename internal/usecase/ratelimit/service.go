package ratelimit

import (
	"context"
	"math/rand"
	"time"

	domratelimit "example.com/storefront-checkout/internal/domain/ratelimit"
)

const (
	DefaultMaxRequests = 30
	DefaultWindow      = time.Minute
)

// Service is the authoritative sliding-window throttle backed by shared
// storage. It is a best-effort guard: concurrent checks against the same key
// may transiently exceed the limit by a small margin.
type Service struct {
	store     domratelimit.Store
	max       int64
	window    time.Duration
	retention time.Duration
	// pruneChance controls the probabilistic housekeeping pass.
	pruneChance float64
	now         func() time.Time
	roll        func() float64
}

func NewService(store domratelimit.Store, max int64, window time.Duration) *Service {
	if max <= 0 {
		max = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Service{
		store:       store,
		max:         max,
		window:      window,
		retention:   24 * time.Hour,
		pruneChance: 0.01,
		now:         time.Now,
		roll:        rand.Float64,
	}
}

func (s *Service) Check(ctx context.Context, identifier, endpoint string) (domratelimit.Decision, error) {
	return s.CheckWithLimit(ctx, identifier, endpoint, s.max, s.window)
}

// CheckWithLimit counts requests in the trailing window and records this one
// when under the limit. Callers override max/window per endpoint; zero values
// fall back to the service defaults.
func (s *Service) CheckWithLimit(ctx context.Context, identifier, endpoint string, max int64, window time.Duration) (domratelimit.Decision, error) {
	if max <= 0 {
		max = s.max
	}
	if window <= 0 {
		window = s.window
	}
	now := s.now()

	if s.roll() < s.pruneChance {
		// advisory housekeeping, failures are not correctness-critical
		_ = s.store.DeleteBefore(ctx, now.Add(-s.retention))
	}

	count, err := s.store.CountSince(ctx, identifier, endpoint, now.Add(-window))
	if err != nil {
		return domratelimit.Decision{}, err
	}
	if count >= max {
		return domratelimit.Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: window,
		}, nil
	}

	if err := s.store.Increment(ctx, identifier, endpoint, now.Truncate(time.Minute)); err != nil {
		return domratelimit.Decision{}, err
	}
	return domratelimit.Decision{
		Allowed:   true,
		Remaining: max - count - 1,
	}, nil
}

func (s *Service) Window() time.Duration { return s.window }
