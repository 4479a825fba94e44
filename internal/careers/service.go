package careers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/resumes"
)

// CreateInput carries the writable fields of a career record.
type CreateInput struct {
	CompanyName    string           `json:"companyName"`
	Position       string           `json:"position"`
	Status         string           `json:"status"`
	StartDate      string           `json:"startDate"`
	EndDate        string           `json:"endDate"`
	EmploymentType string           `json:"employmentType"`
	Notes          string           `json:"notes"`
	SalaryHistory  []SalarySnapshot `json:"salaryHistory"`
	OfferSalary    *SalarySnapshot  `json:"offerSalary"`
}

// ConvertedExperience pairs a generated work-experience block with
// advisory completeness issues found on it.
type ConvertedExperience struct {
	Experience resumes.WorkExperience `json:"experience"`
	Issues     []string               `json:"issues,omitempty"`
}

// Service implements career record operations.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Create validates and stores a new career record.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Career, error) {
	career := careerFromInput(userID, in)
	career.ID = uuid.NewString()
	if err := validateCareer(career); err != nil {
		return Career{}, err
	}
	if err := s.Repo.Create(ctx, career); err != nil {
		return Career{}, err
	}
	return s.Repo.GetByID(ctx, userID, career.ID)
}

// Get fetches one record scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, careerID string) (Career, error) {
	return s.Repo.GetByID(ctx, userID, careerID)
}

// List returns a user's records, optionally filtered by exact company name.
func (s *Service) List(ctx context.Context, userID, companyName string) ([]Career, error) {
	return s.Repo.ListByUser(ctx, userID, companyName)
}

// Update validates and rewrites an existing record.
func (s *Service) Update(ctx context.Context, userID, careerID string, in CreateInput) (Career, error) {
	career := careerFromInput(userID, in)
	career.ID = careerID
	if err := validateCareer(career); err != nil {
		return Career{}, err
	}
	if err := s.Repo.Update(ctx, career); err != nil {
		return Career{}, err
	}
	return s.Repo.GetByID(ctx, userID, careerID)
}

// Delete removes a record scoped to its owner.
func (s *Service) Delete(ctx context.Context, userID, careerID string) error {
	return s.Repo.Delete(ctx, userID, careerID)
}

// CompanyTenure reports a company's total tenure in months plus its
// formatted rendering. companyName is required.
func (s *Service) CompanyTenure(ctx context.Context, userID, companyName string) (int, string, error) {
	if strings.TrimSpace(companyName) == "" {
		return 0, "", fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	records, err := s.Repo.ListByUser(ctx, userID, companyName)
	if err != nil {
		return 0, "", err
	}
	if len(records) == 0 {
		return 0, "", ErrNotFound
	}
	months := TenureMonths(records, s.Now())
	return months, FormatTenure(months), nil
}

// Convert folds the user's career records into work-experience blocks
// along with per-block advisory issues. The result is returned to the
// caller for review; nothing is written to any resume here.
func (s *Service) Convert(ctx context.Context, userID string) ([]ConvertedExperience, error) {
	records, err := s.Repo.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	blocks := ConvertToWorkExperience(records)
	out := make([]ConvertedExperience, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, ConvertedExperience{
			Experience: block,
			Issues:     ValidateWorkExperience(block),
		})
	}
	return out, nil
}

func careerFromInput(userID string, in CreateInput) Career {
	return Career{
		UserID:         userID,
		CompanyName:    strings.TrimSpace(in.CompanyName),
		Position:       strings.TrimSpace(in.Position),
		Status:         strings.TrimSpace(in.Status),
		StartDate:      strings.TrimSpace(in.StartDate),
		EndDate:        strings.TrimSpace(in.EndDate),
		EmploymentType: strings.TrimSpace(in.EmploymentType),
		Notes:          strings.TrimSpace(in.Notes),
		SalaryHistory:  in.SalaryHistory,
		OfferSalary:    in.OfferSalary,
	}
}

func validateCareer(c Career) error {
	if c.CompanyName == "" {
		return fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}
	if c.Position == "" {
		return fmt.Errorf("%w: position is required", ErrInvalidInput)
	}
	if c.Status != StatusCurrent && c.Status != StatusLeft {
		return fmt.Errorf("%w: status must be %q or %q", ErrInvalidInput, StatusCurrent, StatusLeft)
	}
	if _, err := time.Parse(monthLayout, c.StartDate); err != nil {
		return fmt.Errorf("%w: start date must be YYYY-MM", ErrInvalidInput)
	}
	if c.Status == StatusCurrent && c.EndDate != "" {
		return fmt.Errorf("%w: end date must be empty for a current position", ErrInvalidInput)
	}
	if c.Status == StatusLeft {
		end, err := time.Parse(monthLayout, c.EndDate)
		if err != nil {
			return fmt.Errorf("%w: end date must be YYYY-MM for a left position", ErrInvalidInput)
		}
		start, _ := time.Parse(monthLayout, c.StartDate)
		if end.Before(start) {
			return fmt.Errorf("%w: end date must not precede start date", ErrInvalidInput)
		}
	}
	for _, snap := range c.SalaryHistory {
		if err := validateSnapshot(snap); err != nil {
			return err
		}
	}
	if c.OfferSalary != nil {
		if err := validateSnapshot(*c.OfferSalary); err != nil {
			return err
		}
	}
	return nil
}

func validateSnapshot(snap SalarySnapshot) error {
	if _, err := time.Parse(monthLayout, snap.Date); err != nil {
		return fmt.Errorf("%w: salary date must be YYYY-MM", ErrInvalidInput)
	}
	if snap.Amount < 0 {
		return fmt.Errorf("%w: salary amount must not be negative", ErrInvalidInput)
	}
	return nil
}
