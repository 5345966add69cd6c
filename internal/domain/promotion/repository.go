package promotion

import "context"

type Repository interface {
	// ListActive returns active rules ordered by priority descending.
	ListActive(ctx context.Context) ([]*Rule, error)
}
