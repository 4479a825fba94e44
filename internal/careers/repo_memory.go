package careers

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	byUser  map[string]map[string]Career
	created map[string]time.Time
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byUser:  make(map[string]map[string]Career),
		created: make(map[string]time.Time),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, career Career) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[career.UserID]; !ok {
		r.byUser[career.UserID] = make(map[string]Career)
	}
	now := time.Now().UTC()
	career.CreatedAt = now
	career.UpdatedAt = now
	r.byUser[career.UserID][career.ID] = career
	r.created[career.ID] = now
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, careerID string) (Career, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	career, ok := r.byUser[userID][careerID]
	if !ok {
		return Career{}, ErrNotFound
	}
	return career, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID, companyName string) ([]Career, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Career
	for _, career := range r.byUser[userID] {
		if companyName != "" && career.CompanyName != companyName {
			continue
		}
		out = append(out, career)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return r.created[out[i].ID].Before(r.created[out[j].ID])
	})
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, career Career) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byUser[career.UserID][career.ID]
	if !ok {
		return ErrNotFound
	}
	career.CreatedAt = existing.CreatedAt
	career.UpdatedAt = time.Now().UTC()
	r.byUser[career.UserID][career.ID] = career
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, careerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[userID][careerID]; !ok {
		return ErrNotFound
	}
	delete(r.byUser[userID], careerID)
	delete(r.created, careerID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
