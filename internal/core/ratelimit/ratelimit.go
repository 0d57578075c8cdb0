package ratelimit

import "context"

// Limiter decides whether one more hit for key fits its budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
