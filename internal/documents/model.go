package documents

import "time"

// Document is an uploaded source file (an old resume PDF, a job posting
// saved as text) plus the derived extracted-text object.
type Document struct {
	ID               string
	UserID           string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	ExtractedTextKey string
	ExtractedAt      *time.Time
	CreatedAt        time.Time
}
