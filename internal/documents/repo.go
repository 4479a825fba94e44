package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, docID string) (Document, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error)
	MarkExtracted(ctx context.Context, userID, docID, extractedTextKey string) error
	SoftDelete(ctx context.Context, userID, docID string) error
}
