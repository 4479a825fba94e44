package applications

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]map[string]Application
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]map[string]Application)}
}

func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[app.UserID]; !ok {
		r.byUser[app.UserID] = make(map[string]Application)
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Tags == nil {
		app.Tags = []string{}
	}
	r.byUser[app.UserID][app.ID] = app
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, appID string) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.byUser[userID][appID]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) List(ctx context.Context, userID string, filter ListFilter) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Application
	for _, app := range r.byUser[userID] {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		if filter.Tag != "" && !slices.Contains(app.Tags, filter.Tag) {
			continue
		}
		if filter.From != "" && (app.AppliedAt == "" || app.AppliedAt < filter.From) {
			continue
		}
		if filter.To != "" && (app.AppliedAt == "" || app.AppliedAt > filter.To) {
			continue
		}
		out = append(out, app)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, app Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byUser[app.UserID][app.ID]
	if !ok {
		return ErrNotFound
	}
	app.CreatedAt = existing.CreatedAt
	app.UpdatedAt = time.Now().UTC()
	if app.Tags == nil {
		app.Tags = []string{}
	}
	r.byUser[app.UserID][app.ID] = app
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, appID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[userID][appID]; !ok {
		return ErrNotFound
	}
	delete(r.byUser[userID], appID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
