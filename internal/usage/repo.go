package usage

import "context"

// Repo defines persistence operations for usage windows. Consume must
// be atomic: two concurrent calls never push Used past Limit.
type Repo interface {
	Get(ctx context.Context, userID string) (Usage, error)
	Consume(ctx context.Context, userID string, n int) (Usage, error)
	Reset(ctx context.Context, userID string) (Usage, error)
}
