package usage

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu   sync.Mutex
	data map[string]Usage
	Now  func() time.Time
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Usage), Now: time.Now}
}

func (r *MemoryRepo) Get(ctx context.Context, userID string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensure(userID), nil
}

func (r *MemoryRepo) Consume(ctx context.Context, userID string, n int) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.ensure(userID)
	if n <= 0 {
		return u, nil
	}
	if u.Used+n > u.Limit {
		return Usage{}, ErrLimitReached
	}
	u.Used += n
	r.data[userID] = u
	return u, nil
}

func (r *MemoryRepo) Reset(ctx context.Context, userID string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.ensure(userID)
	u.Used = 0
	u.ResetsAt = r.Now().UTC().Add(periodLength)
	r.data[userID] = u
	return u, nil
}

// ensure initializes a missing window and rolls an expired one over.
// Callers hold the lock.
func (r *MemoryRepo) ensure(userID string) Usage {
	now := r.Now().UTC()
	u, ok := r.data[userID]
	if !ok {
		u = defaultUsage(now)
	}
	if !now.Before(u.ResetsAt) {
		u.Used = 0
		u.ResetsAt = now.Add(periodLength)
	}
	r.data[userID] = u
	return u
}

var _ Repo = (*MemoryRepo)(nil)
