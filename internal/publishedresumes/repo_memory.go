package publishedresumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests. It
// enforces the same uniqueness rules the Postgres constraints do.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]PublishedResume // keyed by user_id + "\x00" + source_resume_id
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]PublishedResume)}
}

func sourceKey(userID, sourceResumeID string) string {
	return userID + "\x00" + sourceResumeID
}

func (r *MemoryRepo) Insert(ctx context.Context, published PublishedResume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sourceKey(published.UserID, published.SourceResumeID)
	if _, exists := r.rows[key]; exists {
		return ErrConflict
	}
	for _, row := range r.rows {
		if row.Slug == published.Slug {
			return ErrSlugTaken
		}
	}
	now := time.Now().UTC()
	published.CreatedAt = now
	published.UpdatedAt = now
	r.rows[key] = published
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, published PublishedResume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sourceKey(published.UserID, published.SourceResumeID)
	existing, ok := r.rows[key]
	if !ok {
		return ErrNotFound
	}
	for other, row := range r.rows {
		if other != key && row.Slug == published.Slug {
			return ErrSlugTaken
		}
	}
	published.ID = existing.ID
	published.Version = existing.Version
	published.CreatedAt = existing.CreatedAt
	published.UpdatedAt = time.Now().UTC()
	r.rows[key] = published
	return nil
}

func (r *MemoryRepo) GetBySource(ctx context.Context, userID, sourceResumeID string) (PublishedResume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	published, ok := r.rows[sourceKey(userID, sourceResumeID)]
	if !ok {
		return PublishedResume{}, ErrNotFound
	}
	return published, nil
}

func (r *MemoryRepo) GetBySlug(ctx context.Context, slug string) (PublishedResume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, published := range r.rows {
		if published.Slug == slug {
			return published, nil
		}
	}
	return PublishedResume{}, ErrNotFound
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]PublishedResume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []PublishedResume
	for _, published := range r.rows {
		if published.UserID == userID {
			out = append(out, published)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
