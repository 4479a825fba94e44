package resumes

import "time"

// Resume is the top-level editable resume aggregate owned by one user.
type Resume struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	IsPrimary    bool      `json:"isPrimary"`
	IsPublic     bool      `json:"isPublic"`
	IsArchived   bool      `json:"isArchived"`
	Completeness int       `json:"completeness"`
	Slug         string    `json:"slug,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Personal and contact fields. The contact subset is stripped by the
	// publication sanitizer before any public exposure.
	FullName    string `json:"fullName,omitempty"`
	NameKana    string `json:"nameKana,omitempty"`
	BirthDate   string `json:"birthDate,omitempty"`
	Age         int    `json:"age,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Prefecture  string `json:"prefecture,omitempty"`
	City        string `json:"city,omitempty"`
	AddressLine string `json:"addressLine,omitempty"`
	Building    string `json:"building,omitempty"`
	WebsiteURL  string `json:"websiteUrl,omitempty"`
	GithubURL   string `json:"githubUrl,omitempty"`
	LinkedinURL string `json:"linkedinUrl,omitempty"`
	SelfPR      string `json:"selfPr,omitempty"`

	Education      []Education      `json:"education"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Certifications []Certification  `json:"certifications"`
	Awards         []Award          `json:"awards"`
	Languages      []Language       `json:"languages"`
	Skills         []Skill          `json:"skills"`
	Preferences    Preferences      `json:"preferences"`
}

// WorkExperience aggregates one employer relationship as an ordered list
// of positions. Salary never appears here: conversion from career records
// is lossy by design.
type WorkExperience struct {
	CompanyName string     `json:"companyName"`
	Industry    string     `json:"industry,omitempty"`
	Department  string     `json:"department,omitempty"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate,omitempty"`
	IsCurrent   bool       `json:"isCurrent"`
	Positions   []Position `json:"positions"`
}

// Position is one title/date-range segment within a WorkExperience.
type Position struct {
	Title            string   `json:"title"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate,omitempty"`
	IsCurrent        bool     `json:"isCurrent"`
	Description      string   `json:"description,omitempty"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
}

type Education struct {
	School    string `json:"school"`
	Degree    string `json:"degree,omitempty"`
	Major     string `json:"major,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

type Certification struct {
	Name       string `json:"name"`
	IssuedBy   string `json:"issuedBy,omitempty"`
	AcquiredAt string `json:"acquiredAt,omitempty"`
}

type Award struct {
	Title     string `json:"title"`
	AwardedAt string `json:"awardedAt,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

type Language struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

type Skill struct {
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	YearsUsed int    `json:"yearsUsed,omitempty"`
	Level     string `json:"level,omitempty"`
}

type Preferences struct {
	DesiredRole     string   `json:"desiredRole,omitempty"`
	DesiredSalary   string   `json:"desiredSalary,omitempty"`
	DesiredLocation string   `json:"desiredLocation,omitempty"`
	WorkStyles      []string `json:"workStyles,omitempty"`
}
