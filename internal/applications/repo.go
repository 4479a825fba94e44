package applications

import "context"

// Repo defines persistence operations for application records.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, userID, appID string) (Application, error)
	List(ctx context.Context, userID string, filter ListFilter) ([]Application, error)
	Update(ctx context.Context, app Application) error
	Delete(ctx context.Context, userID, appID string) error
}
