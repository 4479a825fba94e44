package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]map[string]Resume
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[resume.UserID]; !ok {
		r.byUser[resume.UserID] = make(map[string]Resume)
	}
	now := time.Now().UTC()
	resume.CreatedAt = now
	resume.UpdatedAt = now
	r.byUser[resume.UserID][resume.ID] = resume
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byUser[userID][resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, includeArchived bool) ([]Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Resume
	for _, resume := range r.byUser[userID] {
		if resume.IsArchived && !includeArchived {
			continue
		}
		out = append(out, resume)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, resume Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byUser[resume.UserID][resume.ID]
	if !ok {
		return ErrNotFound
	}
	resume.IsPrimary = existing.IsPrimary
	resume.CreatedAt = existing.CreatedAt
	resume.UpdatedAt = time.Now().UTC()
	r.byUser[resume.UserID][resume.ID] = resume
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, resumeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.byUser[userID][resumeID]
	if !ok {
		return ErrNotFound
	}
	if resume.IsPrimary {
		return ErrPrimaryDelete
	}
	delete(r.byUser[userID], resumeID)
	return nil
}

func (r *MemoryRepo) SetPrimary(ctx context.Context, userID, resumeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := r.byUser[userID][resumeID]
	if !ok {
		return ErrNotFound
	}
	for id, resume := range r.byUser[userID] {
		if resume.IsPrimary {
			resume.IsPrimary = false
			resume.UpdatedAt = time.Now().UTC()
			r.byUser[userID][id] = resume
		}
	}
	target.IsPrimary = true
	target.UpdatedAt = time.Now().UTC()
	r.byUser[userID][resumeID] = target
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
