package careers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"career-backend/internal/resumes"
)

// monthLayout parses YYYY-MM values with an implicit first day of month.
const monthLayout = "2006-01"

// ConvertToWorkExperience folds career records into resume work-experience
// blocks, one per employer. Grouping is by exact company-name match; near
// duplicates ("Acme Inc." vs "Acme Inc") intentionally stay separate.
// Salary fields never cross this boundary.
func ConvertToWorkExperience(records []Career) []resumes.WorkExperience {
	groups := make(map[string][]Career)
	var order []string
	for _, c := range records {
		if _, seen := groups[c.CompanyName]; !seen {
			order = append(order, c.CompanyName)
		}
		groups[c.CompanyName] = append(groups[c.CompanyName], c)
	}

	out := make([]resumes.WorkExperience, 0, len(order))
	for _, company := range order {
		out = append(out, convertGroup(company, groups[company]))
	}

	// Employers ordered by earliest start date for a stable response.
	sort.SliceStable(out, func(i, j int) bool {
		return monthSortKey(out[i].StartDate).Before(monthSortKey(out[j].StartDate))
	})
	return out
}

func convertGroup(company string, group []Career) resumes.WorkExperience {
	sorted := make([]Career, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return monthSortKey(sorted[i].StartDate).Before(monthSortKey(sorted[j].StartDate))
	})

	positions := make([]resumes.Position, 0, len(sorted))
	for _, c := range sorted {
		positions = append(positions, resumes.Position{
			Title:     c.Position,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
			IsCurrent: c.IsCurrent(),
			// Notes seed the description as an editing hint only;
			// responsibilities and achievements require manual entry.
			Description:      c.Notes,
			Responsibilities: []string{},
			Achievements:     []string{},
		})
	}

	last := sorted[len(sorted)-1]
	we := resumes.WorkExperience{
		CompanyName: company,
		StartDate:   sorted[0].StartDate,
		IsCurrent:   last.IsCurrent(),
		Positions:   positions,
	}
	if !last.IsCurrent() {
		we.EndDate = last.EndDate
	}
	return we
}

// ValidateWorkExperience returns advisory completeness issues. It never
// blocks saving; callers surface the list for the user to resolve.
func ValidateWorkExperience(we resumes.WorkExperience) []string {
	var issues []string
	if strings.TrimSpace(we.CompanyName) == "" {
		issues = append(issues, "company name is required")
	}
	if strings.TrimSpace(we.Industry) == "" {
		issues = append(issues, "industry is not set")
	}
	if strings.TrimSpace(we.StartDate) == "" {
		issues = append(issues, "start date is required")
	}
	for i, p := range we.Positions {
		if strings.TrimSpace(p.Title) == "" {
			issues = append(issues, positionIssue(i, "title is required"))
		}
		if strings.TrimSpace(p.StartDate) == "" {
			issues = append(issues, positionIssue(i, "start date is required"))
		}
	}
	return issues
}

func positionIssue(index int, msg string) string {
	return fmt.Sprintf("position %d: %s", index+1, msg)
}

func monthSortKey(s string) time.Time {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		// Unparseable dates sort first so they surface early in review.
		return time.Time{}
	}
	return t
}
