package usage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(now time.Time) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	repo.Now = func() time.Time { return now }
	return NewService(repo), repo
}

func TestConsumeStopsAtLimit(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)
	ctx := context.Background()

	for i := 0; i < defaultLimit; i++ {
		if _, err := svc.Consume(ctx, "user-1", 1); err != nil {
			t.Fatalf("consume %d: %v", i+1, err)
		}
	}

	if _, err := svc.Consume(ctx, "user-1", 1); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("err = %v, want ErrLimitReached", err)
	}

	// A rejected consume spends nothing.
	u, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Used != defaultLimit {
		t.Fatalf("used = %d, want %d", u.Used, defaultLimit)
	}
}

func TestWindowRollsOverLazily(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "user-1", defaultLimit); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if _, err := svc.Consume(ctx, "user-1", 1); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("err = %v, want ErrLimitReached", err)
	}

	// Past the reset instant the next consume starts a fresh window.
	repo.Now = func() time.Time { return now.Add(periodLength) }
	u, err := svc.Consume(ctx, "user-1", 1)
	if err != nil {
		t.Fatalf("consume after rollover: %v", err)
	}
	if u.Used != 1 {
		t.Fatalf("used = %d, want 1", u.Used)
	}
	if !u.ResetsAt.After(now.Add(periodLength)) {
		t.Fatalf("resetsAt = %v not advanced", u.ResetsAt)
	}
}

func TestUsersAreMeteredIndependently(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "user-1", defaultLimit); err != nil {
		t.Fatalf("consume: %v", err)
	}
	u, err := svc.Consume(ctx, "user-2", 1)
	if err != nil {
		t.Fatalf("consume other user: %v", err)
	}
	if u.Used != 1 {
		t.Fatalf("used = %d, want 1", u.Used)
	}
}

func TestResetZeroesWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "user-1", 5); err != nil {
		t.Fatalf("consume: %v", err)
	}
	u, err := svc.Reset(ctx, "user-1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if u.Used != 0 || u.Plan != defaultPlan || u.Limit != defaultLimit {
		t.Fatalf("after reset = %+v", u)
	}
}
