package resumes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UpdateInput carries the writable fields of a resume aggregate. The
// primary flag is excluded on purpose; it only moves via SetPrimary.
type UpdateInput struct {
	Name     string `json:"name"`
	IsPublic *bool  `json:"isPublic"`

	FullName    string `json:"fullName"`
	NameKana    string `json:"nameKana"`
	BirthDate   string `json:"birthDate"`
	Age         int    `json:"age"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	PostalCode  string `json:"postalCode"`
	Prefecture  string `json:"prefecture"`
	City        string `json:"city"`
	AddressLine string `json:"addressLine"`
	Building    string `json:"building"`
	WebsiteURL  string `json:"websiteUrl"`
	GithubURL   string `json:"githubUrl"`
	LinkedinURL string `json:"linkedinUrl"`
	SelfPR      string `json:"selfPr"`

	Education      []Education      `json:"education"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Certifications []Certification  `json:"certifications"`
	Awards         []Award          `json:"awards"`
	Languages      []Language       `json:"languages"`
	Skills         []Skill          `json:"skills"`
	Preferences    Preferences      `json:"preferences"`
}

// Service implements resume aggregate operations.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create stores a new named resume. The user's first resume becomes
// primary automatically.
func (s *Service) Create(ctx context.Context, userID, name string) (Resume, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Resume{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	existing, err := s.Repo.ListByUser(ctx, userID, true)
	if err != nil {
		return Resume{}, err
	}

	resume := Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		IsPrimary: len(existing) == 0,
	}
	resume.Completeness = Completeness(resume)
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, resume.ID)
}

// Get fetches one resume scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns a user's resumes, newest first with the primary pinned.
func (s *Service) List(ctx context.Context, userID string, includeArchived bool) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID, includeArchived)
}

// Update rewrites a resume's editable content and recomputes its
// completeness score.
func (s *Service) Update(ctx context.Context, userID, resumeID string, in UpdateInput) (Resume, error) {
	current, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return Resume{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	updated := applyInput(current, in)
	if updated.IsArchived {
		// Archived resumes never stay publicly visible.
		updated.IsPublic = false
	}
	updated.Completeness = Completeness(updated)
	if err := s.Repo.Update(ctx, updated); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// Duplicate deep-copies a resume under a new name. The copy is never
// primary, public, or archived.
func (s *Service) Duplicate(ctx context.Context, userID, resumeID, name string) (Resume, error) {
	source, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}

	copyName := strings.TrimSpace(name)
	if copyName == "" {
		copyName = source.Name + " (copy)"
	}

	duplicate := source
	duplicate.ID = uuid.NewString()
	duplicate.Name = copyName
	duplicate.IsPrimary = false
	duplicate.IsPublic = false
	duplicate.IsArchived = false
	duplicate.Slug = ""
	if err := s.Repo.Create(ctx, duplicate); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, duplicate.ID)
}

// Archive hides a resume from default listings and forces it private.
// Any previously published projection is left untouched.
func (s *Service) Archive(ctx context.Context, userID, resumeID string, archived bool) (Resume, error) {
	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}
	resume.IsArchived = archived
	if archived {
		resume.IsPublic = false
	}
	if err := s.Repo.Update(ctx, resume); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// SetPrimary moves the primary flag to the given resume.
func (s *Service) SetPrimary(ctx context.Context, userID, resumeID string) (Resume, error) {
	if err := s.Repo.SetPrimary(ctx, userID, resumeID); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// Delete removes a non-primary resume. Deleting the primary resume is
// rejected; callers must move the flag first.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	return s.Repo.Delete(ctx, userID, resumeID)
}

func applyInput(current Resume, in UpdateInput) Resume {
	updated := current
	updated.Name = strings.TrimSpace(in.Name)
	if in.IsPublic != nil {
		updated.IsPublic = *in.IsPublic
	}
	updated.FullName = strings.TrimSpace(in.FullName)
	updated.NameKana = strings.TrimSpace(in.NameKana)
	updated.BirthDate = strings.TrimSpace(in.BirthDate)
	updated.Age = in.Age
	updated.Phone = strings.TrimSpace(in.Phone)
	updated.Email = strings.TrimSpace(in.Email)
	updated.PostalCode = strings.TrimSpace(in.PostalCode)
	updated.Prefecture = strings.TrimSpace(in.Prefecture)
	updated.City = strings.TrimSpace(in.City)
	updated.AddressLine = strings.TrimSpace(in.AddressLine)
	updated.Building = strings.TrimSpace(in.Building)
	updated.WebsiteURL = strings.TrimSpace(in.WebsiteURL)
	updated.GithubURL = strings.TrimSpace(in.GithubURL)
	updated.LinkedinURL = strings.TrimSpace(in.LinkedinURL)
	updated.SelfPR = strings.TrimSpace(in.SelfPR)
	updated.Education = in.Education
	updated.WorkExperience = in.WorkExperience
	updated.Certifications = in.Certifications
	updated.Awards = in.Awards
	updated.Languages = in.Languages
	updated.Skills = in.Skills
	updated.Preferences = in.Preferences
	return updated
}
