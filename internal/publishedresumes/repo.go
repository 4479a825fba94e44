package publishedresumes

import "context"

// Repo defines persistence operations for published resume projections.
// Insert must fail with ErrConflict when a row for the same
// (user, source resume) pair already exists, and with ErrSlugTaken when
// the slug belongs to another row; the store's uniqueness constraints
// are the arbiter for concurrent publishes.
type Repo interface {
	Insert(ctx context.Context, published PublishedResume) error
	Update(ctx context.Context, published PublishedResume) error
	GetBySource(ctx context.Context, userID, sourceResumeID string) (PublishedResume, error)
	GetBySlug(ctx context.Context, slug string) (PublishedResume, error)
	ListByUser(ctx context.Context, userID string) ([]PublishedResume, error)
}
