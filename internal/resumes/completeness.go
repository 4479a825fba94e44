package resumes

import "strings"

// Completeness scores how filled-in a resume is, 0 to 100. The weights
// favor the sections recruiters read first; the score is advisory and
// never blocks saving or publishing.
func Completeness(r Resume) int {
	score := 0
	if strings.TrimSpace(r.FullName) != "" {
		score += 15
	}
	if strings.TrimSpace(r.SelfPR) != "" {
		score += 15
	}
	if len(r.WorkExperience) > 0 {
		score += 25
		complete := true
		for _, we := range r.WorkExperience {
			if strings.TrimSpace(we.CompanyName) == "" || strings.TrimSpace(we.StartDate) == "" || len(we.Positions) == 0 {
				complete = false
				break
			}
		}
		if complete {
			score += 10
		}
	}
	if len(r.Education) > 0 {
		score += 10
	}
	if len(r.Skills) > 0 {
		score += 10
	}
	if len(r.Certifications) > 0 || len(r.Awards) > 0 || len(r.Languages) > 0 {
		score += 5
	}
	if hasPreferences(r.Preferences) {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

func hasPreferences(p Preferences) bool {
	return p.DesiredRole != "" || p.DesiredSalary != "" || p.DesiredLocation != "" || len(p.WorkStyles) > 0
}
