package publishedresumes

import "career-backend/internal/resumes"

// Sanitize strips direct contact and precise-identity fields from a
// resume before public exposure. Age, prefecture, portfolio URLs, and
// every content section survive untouched. Sanitizing an already
// sanitized resume is a no-op.
func Sanitize(r resumes.Resume) resumes.Resume {
	out := r
	out.NameKana = ""
	out.BirthDate = ""
	out.Phone = ""
	out.Email = ""
	out.PostalCode = ""
	out.City = ""
	out.AddressLine = ""
	out.Building = ""
	return out
}
