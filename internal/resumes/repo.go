package resumes

import "context"

// Repo defines persistence operations for resume aggregates.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, includeArchived bool) ([]Resume, error)
	Update(ctx context.Context, resume Resume) error
	Delete(ctx context.Context, userID, resumeID string) error
	// SetPrimary atomically moves the primary flag to resumeID within the
	// user's resumes.
	SetPrimary(ctx context.Context, userID, resumeID string) error
}
