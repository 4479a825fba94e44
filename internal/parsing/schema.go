package parsing

import (
	"fmt"
	"strings"

	"career-backend/internal/resumes"
)

// ParsedResume is the structured output of a resume parse. The section
// types are shared with the resume aggregate so a parse result can seed
// a resume edit without field mapping.
type ParsedResume struct {
	FullName       string                   `json:"fullName"`
	Email          string                   `json:"email"`
	Phone          string                   `json:"phone"`
	Prefecture     string                   `json:"prefecture"`
	SelfPR         string                   `json:"selfPr"`
	Education      []resumes.Education      `json:"education"`
	WorkExperience []resumes.WorkExperience `json:"workExperience"`
	Certifications []resumes.Certification  `json:"certifications"`
	Languages      []resumes.Language       `json:"languages"`
	Skills         []resumes.Skill          `json:"skills"`
}

// ParsedJobPosting is the structured output of a job posting parse.
type ParsedJobPosting struct {
	CompanyName     string   `json:"companyName"`
	Role            string   `json:"role"`
	Location        string   `json:"location"`
	EmploymentType  string   `json:"employmentType"`
	SalaryRange     string   `json:"salaryRange"`
	RequiredSkills  []string `json:"requiredSkills"`
	PreferredSkills []string `json:"preferredSkills"`
	Description     string   `json:"description"`
	URL             string   `json:"url"`
	Tags            []string `json:"tags"`
}

// Validate rejects parse output that carries no usable signal or that
// violates the schema's structural rules.
func (p ParsedResume) Validate() error {
	hasContent := strings.TrimSpace(p.FullName) != "" ||
		strings.TrimSpace(p.SelfPR) != "" ||
		len(p.Education) > 0 ||
		len(p.WorkExperience) > 0 ||
		len(p.Skills) > 0
	if !hasContent {
		return fmt.Errorf("no recognizable resume content")
	}
	for i, we := range p.WorkExperience {
		if strings.TrimSpace(we.CompanyName) == "" {
			return fmt.Errorf("workExperience[%d]: company name missing", i)
		}
		for j, pos := range we.Positions {
			if strings.TrimSpace(pos.Title) == "" {
				return fmt.Errorf("workExperience[%d].positions[%d]: title missing", i, j)
			}
		}
	}
	for i, skill := range p.Skills {
		if strings.TrimSpace(skill.Name) == "" {
			return fmt.Errorf("skills[%d]: name missing", i)
		}
	}
	return nil
}

// Validate rejects job posting output missing its identifying fields.
func (p ParsedJobPosting) Validate() error {
	if strings.TrimSpace(p.CompanyName) == "" && strings.TrimSpace(p.Role) == "" {
		return fmt.Errorf("neither company nor role recognized")
	}
	return nil
}
