package publishedresumes

import (
	"time"

	"career-backend/internal/resumes"
)

// Derived visibility states of a published resume. Status is never
// stored; it is computed from the stored flags at read time.
const (
	StatusActive   = "active"
	StatusExpired  = "expired"
	StatusDisabled = "disabled"
)

// PublishedResume is the immutable-by-readers public projection of a
// resume. The snapshot is a sanitized copy taken at publish time;
// editing the source resume never changes it until the next publish.
type PublishedResume struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	SourceResumeID  string         `json:"sourceResumeId"`
	Slug            string         `json:"slug"`
	Version         int            `json:"version"`
	IsPublic        bool           `json:"isPublic"`
	PublicExpiresAt *time.Time     `json:"publicExpiresAt,omitempty"`
	Snapshot        resumes.Resume `json:"snapshot"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// Status derives the visibility state at the given instant. A disabled
// row stays disabled even when an expiry is also set.
func (p PublishedResume) Status(now time.Time) string {
	if !p.IsPublic {
		return StatusDisabled
	}
	if p.PublicExpiresAt != nil && !now.Before(*p.PublicExpiresAt) {
		return StatusExpired
	}
	return StatusActive
}
