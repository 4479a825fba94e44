package applications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dayLayout = "2006-01-02"

// Input carries the writable fields of an application record.
type Input struct {
	CompanyName string     `json:"companyName"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	AppliedAt   string     `json:"appliedAt"`
	InterviewAt *time.Time `json:"interviewAt"`
	DeadlineAt  string     `json:"deadlineAt"`
	URL         string     `json:"url"`
	Notes       string     `json:"notes"`
	Tags        []string   `json:"tags"`
}

// Service implements application tracker operations.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create validates and stores a new application. Status defaults to
// the wishlist column.
func (s *Service) Create(ctx context.Context, userID string, in Input) (Application, error) {
	app := fromInput(userID, in)
	app.ID = uuid.NewString()
	if app.Status == "" {
		app.Status = StatusWishlist
	}
	if err := validate(app); err != nil {
		return Application{}, err
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	return s.Repo.GetByID(ctx, userID, app.ID)
}

// Get fetches one application scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, appID string) (Application, error) {
	return s.Repo.GetByID(ctx, userID, appID)
}

// List returns a user's applications under the given filter.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Application, error) {
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	for _, day := range []string{filter.From, filter.To} {
		if day == "" {
			continue
		}
		if _, err := time.Parse(dayLayout, day); err != nil {
			return nil, fmt.Errorf("%w: date filters must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	return s.Repo.List(ctx, userID, filter)
}

// Update validates and rewrites an existing application.
func (s *Service) Update(ctx context.Context, userID, appID string, in Input) (Application, error) {
	app := fromInput(userID, in)
	app.ID = appID
	if err := validate(app); err != nil {
		return Application{}, err
	}
	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	return s.Repo.GetByID(ctx, userID, appID)
}

// SetStatus moves an application to another kanban column without
// touching the rest of the record.
func (s *Service) SetStatus(ctx context.Context, userID, appID, status string) (Application, error) {
	if !ValidStatus(status) {
		return Application{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	app, err := s.Repo.GetByID(ctx, userID, appID)
	if err != nil {
		return Application{}, err
	}
	app.Status = status
	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	return s.Repo.GetByID(ctx, userID, appID)
}

// Delete removes an application scoped to its owner.
func (s *Service) Delete(ctx context.Context, userID, appID string) error {
	return s.Repo.Delete(ctx, userID, appID)
}

func fromInput(userID string, in Input) Application {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	return Application{
		UserID:      userID,
		CompanyName: strings.TrimSpace(in.CompanyName),
		Role:        strings.TrimSpace(in.Role),
		Status:      strings.TrimSpace(in.Status),
		AppliedAt:   strings.TrimSpace(in.AppliedAt),
		InterviewAt: in.InterviewAt,
		DeadlineAt:  strings.TrimSpace(in.DeadlineAt),
		URL:         strings.TrimSpace(in.URL),
		Notes:       strings.TrimSpace(in.Notes),
		Tags:        tags,
	}
}

func validate(app Application) error {
	if app.CompanyName == "" {
		return fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}
	if app.Role == "" {
		return fmt.Errorf("%w: role is required", ErrInvalidInput)
	}
	if !ValidStatus(app.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, app.Status)
	}
	for _, day := range []string{app.AppliedAt, app.DeadlineAt} {
		if day == "" {
			continue
		}
		if _, err := time.Parse(dayLayout, day); err != nil {
			return fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	return nil
}
