package careers

import "time"

const (
	StatusCurrent = "current"
	StatusLeft    = "left"
)

// SalarySnapshot is one dated salary figure. Salary data never leaves
// this package except through the owner-scoped career endpoints.
type SalarySnapshot struct {
	Date   string `json:"date"` // YYYY-MM
	Amount int64  `json:"amount"`
}

// Career is one employment stint recorded by a user.
// EndDate is empty iff Status is "current".
type Career struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	CompanyName    string           `json:"companyName"`
	Position       string           `json:"position"`
	Status         string           `json:"status"`
	StartDate      string           `json:"startDate"` // YYYY-MM
	EndDate        string           `json:"endDate,omitempty"`
	EmploymentType string           `json:"employmentType,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	SalaryHistory  []SalarySnapshot `json:"salaryHistory,omitempty"`
	OfferSalary    *SalarySnapshot  `json:"offerSalary,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// IsCurrent reports whether the stint is ongoing.
func (c Career) IsCurrent() bool {
	return c.Status == StatusCurrent
}
