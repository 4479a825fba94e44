package applications

import "time"

// Kanban columns an application moves through.
const (
	StatusWishlist  = "wishlist"
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
)

// ValidStatus reports whether s names a kanban column.
func ValidStatus(s string) bool {
	switch s {
	case StatusWishlist, StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// Application is one tracked job application owned by a user.
type Application struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	CompanyName string     `json:"companyName"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	AppliedAt   string     `json:"appliedAt,omitempty"` // YYYY-MM-DD
	InterviewAt *time.Time `json:"interviewAt,omitempty"`
	DeadlineAt  string     `json:"deadlineAt,omitempty"` // YYYY-MM-DD
	URL         string     `json:"url,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ListFilter narrows a list query. Zero values mean no constraint.
// From and To bound applied_at for the calendar view, YYYY-MM-DD.
type ListFilter struct {
	Status string
	Tag    string
	From   string
	To     string
}
