package documents

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	byUser  map[string]map[string]Document
	deleted map[string]bool
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byUser:  make(map[string]map[string]Document),
		deleted: make(map[string]bool),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[doc.UserID]; !ok {
		r.byUser[doc.UserID] = make(map[string]Document)
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	r.byUser[doc.UserID][doc.ID] = doc
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, docID string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.byUser[userID][docID]
	if !ok || r.deleted[docID] {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Document
	for _, doc := range r.byUser[userID] {
		if r.deleted[doc.ID] {
			continue
		}
		out = append(out, doc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) MarkExtracted(ctx context.Context, userID, docID, extractedTextKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.byUser[userID][docID]
	if !ok || r.deleted[docID] {
		return ErrNotFound
	}
	now := time.Now().UTC()
	doc.ExtractedTextKey = extractedTextKey
	doc.ExtractedAt = &now
	r.byUser[userID][docID] = doc
	return nil
}

func (r *MemoryRepo) SoftDelete(ctx context.Context, userID, docID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[userID][docID]; !ok || r.deleted[docID] {
		return ErrNotFound
	}
	r.deleted[docID] = true
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
