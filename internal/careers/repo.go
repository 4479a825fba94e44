package careers

import "context"

// Repo defines persistence operations for career records.
type Repo interface {
	Create(ctx context.Context, career Career) error
	GetByID(ctx context.Context, userID, careerID string) (Career, error)
	ListByUser(ctx context.Context, userID, companyName string) ([]Career, error)
	Update(ctx context.Context, career Career) error
	Delete(ctx context.Context, userID, careerID string) error
}
