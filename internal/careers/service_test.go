package careers

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestServiceCreateValidatesEndDateAgainstStatus(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		in      CreateInput
		wantErr bool
	}{
		{
			name: "current with no end date",
			in: CreateInput{
				CompanyName: "CompanyX", Position: "Engineer",
				Status: StatusCurrent, StartDate: "2021-04",
			},
		},
		{
			name: "left with end date",
			in: CreateInput{
				CompanyName: "CompanyX", Position: "Engineer",
				Status: StatusLeft, StartDate: "2019-04", EndDate: "2021-03",
			},
		},
		{
			name: "current with end date rejected",
			in: CreateInput{
				CompanyName: "CompanyX", Position: "Engineer",
				Status: StatusCurrent, StartDate: "2021-04", EndDate: "2022-04",
			},
			wantErr: true,
		},
		{
			name: "left without end date rejected",
			in: CreateInput{
				CompanyName: "CompanyX", Position: "Engineer",
				Status: StatusLeft, StartDate: "2019-04",
			},
			wantErr: true,
		},
		{
			name: "end before start rejected",
			in: CreateInput{
				CompanyName: "CompanyX", Position: "Engineer",
				Status: StatusLeft, StartDate: "2021-04", EndDate: "2020-04",
			},
			wantErr: true,
		},
		{
			name: "day precision rejected",
			in: CreateInput{
				CompanyName: "CompanyX", Position: "Engineer",
				Status: StatusCurrent, StartDate: "2021-04-01",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "user-1", tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("err = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
		})
	}
}

func TestServiceCompanyTenure(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	svc.Now = func() time.Time {
		return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", CreateInput{
		CompanyName: "CompanyX", Position: "Engineer",
		Status: StatusLeft, StartDate: "2019-04", EndDate: "2021-03",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", CreateInput{
		CompanyName: "CompanyX", Position: "Senior Engineer",
		Status: StatusCurrent, StartDate: "2021-04",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	months, formatted, err := svc.CompanyTenure(ctx, "user-1", "CompanyX")
	if err != nil {
		t.Fatalf("CompanyTenure: %v", err)
	}
	if months != 62 {
		t.Fatalf("months = %d, want 62", months)
	}
	if formatted != "5年2ヶ月" {
		t.Fatalf("formatted = %q", formatted)
	}

	if _, _, err := svc.CompanyTenure(ctx, "user-1", "Unknown Co"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown company err = %v, want ErrNotFound", err)
	}
	if _, _, err := svc.CompanyTenure(ctx, "user-1", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty company err = %v, want ErrInvalidInput", err)
	}
}

func TestServiceConvertReturnsBlocksWithIssues(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", CreateInput{
		CompanyName: "CompanyX", Position: "Engineer",
		Status: StatusCurrent, StartDate: "2021-04",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	converted, err := svc.Convert(ctx, "user-1")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(converted) != 1 {
		t.Fatalf("expected 1 block, got %d", len(converted))
	}
	// Industry is never captured on career records, so the advisory
	// list always flags it.
	foundIndustry := false
	for _, issue := range converted[0].Issues {
		if issue == "industry is not set" {
			foundIndustry = true
		}
	}
	if !foundIndustry {
		t.Fatalf("issues = %v, want industry advisory", converted[0].Issues)
	}
}
