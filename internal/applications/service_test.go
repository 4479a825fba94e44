package applications

import (
	"context"
	"errors"
	"testing"
)

func seed(t *testing.T, svc *Service, userID string, in Input) Application {
	t.Helper()
	app, err := svc.Create(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return app
}

func TestCreateDefaultsToWishlist(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	app := seed(t, svc, "user-1", Input{CompanyName: "CompanyX", Role: "Backend Engineer"})
	if app.Status != StatusWishlist {
		t.Fatalf("status = %q, want wishlist", app.Status)
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.Create(context.Background(), "user-1", Input{
		CompanyName: "CompanyX", Role: "Engineer", Status: "ghosted",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestListFilters(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	seed(t, svc, "user-1", Input{CompanyName: "A", Role: "Engineer", Status: StatusApplied, AppliedAt: "2024-05-01", Tags: []string{"remote"}})
	seed(t, svc, "user-1", Input{CompanyName: "B", Role: "Engineer", Status: StatusInterview, AppliedAt: "2024-05-20"})
	seed(t, svc, "user-1", Input{CompanyName: "C", Role: "Engineer", Status: StatusApplied, AppliedAt: "2024-06-10"})
	seed(t, svc, "user-2", Input{CompanyName: "D", Role: "Engineer", Status: StatusApplied, AppliedAt: "2024-05-05"})

	byStatus, err := svc.List(ctx, "user-1", ListFilter{Status: StatusApplied})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byStatus) != 2 {
		t.Fatalf("status filter count = %d, want 2", len(byStatus))
	}

	byWindow, err := svc.List(ctx, "user-1", ListFilter{From: "2024-05-01", To: "2024-05-31"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byWindow) != 2 {
		t.Fatalf("window filter count = %d, want 2", len(byWindow))
	}

	byTag, err := svc.List(ctx, "user-1", ListFilter{Tag: "remote"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byTag) != 1 || byTag[0].CompanyName != "A" {
		t.Fatalf("tag filter = %+v", byTag)
	}

	if _, err := svc.List(ctx, "user-1", ListFilter{From: "05/01/2024"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad date filter err = %v, want ErrInvalidInput", err)
	}
}

func TestSetStatusMovesColumn(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	app := seed(t, svc, "user-1", Input{CompanyName: "CompanyX", Role: "Engineer"})
	moved, err := svc.SetStatus(ctx, "user-1", app.ID, StatusInterview)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if moved.Status != StatusInterview {
		t.Fatalf("status = %q, want interview", moved.Status)
	}
	if moved.CompanyName != "CompanyX" {
		t.Fatal("status move must not touch other fields")
	}

	if _, err := svc.SetStatus(ctx, "user-1", app.ID, "bogus"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bogus status err = %v, want ErrInvalidInput", err)
	}
}

func TestOwnershipScoping(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	app := seed(t, svc, "user-1", Input{CompanyName: "CompanyX", Role: "Engineer"})

	if _, err := svc.Get(ctx, "user-2", app.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign get err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "user-2", app.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete err = %v, want ErrNotFound", err)
	}
}
