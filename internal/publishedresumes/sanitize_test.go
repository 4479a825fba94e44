package publishedresumes

import (
	"reflect"
	"testing"

	"career-backend/internal/resumes"
)

func sampleResume() resumes.Resume {
	return resumes.Resume{
		ID:          "resume-1",
		UserID:      "user-1",
		Name:        "Main",
		FullName:    "山田 太郎",
		NameKana:    "やまだ たろう",
		BirthDate:   "1990-05",
		Age:         34,
		Phone:       "090-0000-0000",
		Email:       "taro@example.com",
		PostalCode:  "100-0001",
		Prefecture:  "東京都",
		City:        "千代田区",
		AddressLine: "1-1-1",
		Building:    "Sample Bldg 5F",
		GithubURL:   "https://github.com/taro",
		SelfPR:      "Backend engineer.",
		WorkExperience: []resumes.WorkExperience{{
			CompanyName: "CompanyX",
			StartDate:   "2019-04",
			Positions:   []resumes.Position{{Title: "Engineer", StartDate: "2019-04"}},
		}},
		Skills: []resumes.Skill{{Name: "Go", YearsUsed: 5}},
	}
}

func TestSanitizeNullsContactFields(t *testing.T) {
	got := Sanitize(sampleResume())

	for name, value := range map[string]string{
		"nameKana":    got.NameKana,
		"birthDate":   got.BirthDate,
		"phone":       got.Phone,
		"email":       got.Email,
		"postalCode":  got.PostalCode,
		"city":        got.City,
		"addressLine": got.AddressLine,
		"building":    got.Building,
	} {
		if value != "" {
			t.Fatalf("%s survived sanitization: %q", name, value)
		}
	}
}

func TestSanitizeRetainsPublicSafeFields(t *testing.T) {
	src := sampleResume()
	got := Sanitize(src)

	if got.Age != src.Age {
		t.Fatalf("age = %d, want %d", got.Age, src.Age)
	}
	if got.Prefecture != src.Prefecture {
		t.Fatalf("prefecture = %q, want %q", got.Prefecture, src.Prefecture)
	}
	if got.GithubURL != src.GithubURL {
		t.Fatalf("github url = %q, want %q", got.GithubURL, src.GithubURL)
	}
	if !reflect.DeepEqual(got.WorkExperience, src.WorkExperience) {
		t.Fatal("work experience must survive verbatim")
	}
	if !reflect.DeepEqual(got.Skills, src.Skills) {
		t.Fatal("skills must survive verbatim")
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	once := Sanitize(sampleResume())
	twice := Sanitize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("sanitizing a sanitized resume must change nothing")
	}
}
