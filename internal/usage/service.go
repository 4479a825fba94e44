package usage

import "context"

// Service meters AI parse calls against the user's plan window.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Get returns the current window, initializing or rolling it as needed.
func (s *Service) Get(ctx context.Context, userID string) (Usage, error) {
	return s.Repo.Get(ctx, userID)
}

// Consume spends n units, or ErrLimitReached without spending anything.
func (s *Service) Consume(ctx context.Context, userID string, n int) (Usage, error) {
	return s.Repo.Consume(ctx, userID, n)
}

// Reset zeroes the window. Dev-only.
func (s *Service) Reset(ctx context.Context, userID string) (Usage, error) {
	return s.Repo.Reset(ctx, userID)
}
