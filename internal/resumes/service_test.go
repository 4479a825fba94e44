package resumes

import (
	"context"
	"errors"
	"testing"
)

func TestFirstResumeBecomesPrimary(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, "user-1", "Main")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !first.IsPrimary {
		t.Fatal("first resume should be primary")
	}

	second, err := svc.Create(ctx, "user-1", "For Startups")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.IsPrimary {
		t.Fatal("second resume should not be primary")
	}
}

func TestDeletePrimaryRejected(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	primary, err := svc.Create(ctx, "user-1", "Main")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	other, err := svc.Create(ctx, "user-1", "Other")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, "user-1", primary.ID); !errors.Is(err, ErrPrimaryDelete) {
		t.Fatalf("delete primary err = %v, want ErrPrimaryDelete", err)
	}

	// Moving the flag first makes the old primary deletable.
	if _, err := svc.SetPrimary(ctx, "user-1", other.ID); err != nil {
		t.Fatalf("SetPrimary: %v", err)
	}
	if err := svc.Delete(ctx, "user-1", primary.ID); err != nil {
		t.Fatalf("delete after reassign: %v", err)
	}
}

func TestSetPrimaryKeepsSinglePrimary(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	a, _ := svc.Create(ctx, "user-1", "A")
	b, _ := svc.Create(ctx, "user-1", "B")

	if _, err := svc.SetPrimary(ctx, "user-1", b.ID); err != nil {
		t.Fatalf("SetPrimary: %v", err)
	}

	list, err := svc.List(ctx, "user-1", true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	primaries := 0
	for _, r := range list {
		if r.IsPrimary {
			primaries++
			if r.ID != b.ID {
				t.Fatalf("primary = %s, want %s", r.ID, b.ID)
			}
		}
	}
	if primaries != 1 {
		t.Fatalf("primary count = %d, want 1", primaries)
	}
	_ = a
}

func TestArchiveForcesPrivate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "Main")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	public := true
	if _, err := svc.Update(ctx, "user-1", created.ID, UpdateInput{Name: "Main", IsPublic: &public}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	archived, err := svc.Archive(ctx, "user-1", created.ID, true)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if !archived.IsArchived {
		t.Fatal("resume should be archived")
	}
	if archived.IsPublic {
		t.Fatal("archiving must force the resume private")
	}

	// Archived resumes drop out of default listings.
	visible, err := svc.List(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("default list should hide archived resumes, got %d", len(visible))
	}
	all, err := svc.List(ctx, "user-1", true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("includeArchived list = %d, want 1", len(all))
	}
}

func TestDuplicateResetsFlags(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	source, err := svc.Create(ctx, "user-1", "Main")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	public := true
	if _, err := svc.Update(ctx, "user-1", source.ID, UpdateInput{
		Name:     "Main",
		IsPublic: &public,
		SelfPR:   "Backend engineer with 8 years in payments.",
		Skills:   []Skill{{Name: "Go", YearsUsed: 5}},
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	dup, err := svc.Duplicate(ctx, "user-1", source.ID, "")
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if dup.ID == source.ID {
		t.Fatal("duplicate must get a fresh id")
	}
	if dup.Name != "Main (copy)" {
		t.Fatalf("duplicate name = %q", dup.Name)
	}
	if dup.IsPrimary || dup.IsPublic || dup.IsArchived {
		t.Fatalf("duplicate flags not reset: %+v", dup)
	}
	if dup.SelfPR == "" || len(dup.Skills) != 1 {
		t.Fatal("duplicate should carry content sections")
	}
}

func TestCompletenessRecomputedOnUpdate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "Main")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Completeness != 0 {
		t.Fatalf("empty resume completeness = %d, want 0", created.Completeness)
	}

	updated, err := svc.Update(ctx, "user-1", created.ID, UpdateInput{
		Name:     "Main",
		FullName: "山田 太郎",
		SelfPR:   "Backend engineer.",
		WorkExperience: []WorkExperience{{
			CompanyName: "CompanyX",
			StartDate:   "2019-04",
			Positions:   []Position{{Title: "Engineer", StartDate: "2019-04"}},
		}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Completeness <= created.Completeness {
		t.Fatalf("completeness = %d, want > %d", updated.Completeness, created.Completeness)
	}
}
