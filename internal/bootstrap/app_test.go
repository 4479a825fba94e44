package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"career-backend/internal/bootstrap"
	"career-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		PublicReadRate:  100,
		PublicReadBurst: 100,
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCareerToPublishedResumeFlow(t *testing.T) {
	router := buildTestApp(t)

	// Record two stints at the same company.
	for _, payload := range []map[string]any{
		{
			"companyName": "CompanyX", "position": "Engineer",
			"status": "left", "startDate": "2019-04", "endDate": "2021-03",
		},
		{
			"companyName": "CompanyX", "position": "Senior Engineer",
			"status": "current", "startDate": "2021-04",
		},
	} {
		if resp := doJSON(t, router, http.MethodPost, "/api/v1/careers", payload); resp.Code != http.StatusCreated {
			t.Fatalf("create career: status %d body %s", resp.Code, resp.Body.String())
		}
	}

	// Convert into work-experience blocks.
	resp := doJSON(t, router, http.MethodPost, "/api/v1/careers/convert", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("convert: status %d body %s", resp.Code, resp.Body.String())
	}
	var converted struct {
		WorkExperiences []struct {
			Experience map[string]any `json:"experience"`
		} `json:"workExperiences"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&converted); err != nil {
		t.Fatalf("decode convert: %v", err)
	}
	if len(converted.WorkExperiences) != 1 {
		t.Fatalf("converted blocks = %d, want 1", len(converted.WorkExperiences))
	}

	// Create a resume and fill it with contact data.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/resumes", map[string]any{"name": "Main"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create resume: status %d body %s", resp.Code, resp.Body.String())
	}
	var resume struct {
		ID        string `json:"id"`
		IsPrimary bool   `json:"isPrimary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&resume); err != nil {
		t.Fatalf("decode resume: %v", err)
	}
	if !resume.IsPrimary {
		t.Fatal("first resume should be primary")
	}

	resp = doJSON(t, router, http.MethodPut, "/api/v1/resumes/"+resume.ID, map[string]any{
		"name":           "Main",
		"email":          "taro@example.com",
		"phone":          "090-0000-0000",
		"selfPr":         "Backend engineer.",
		"workExperience": []any{converted.WorkExperiences[0].Experience},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("update resume: status %d body %s", resp.Code, resp.Body.String())
	}

	// Publish with an explicit slug.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/resumes/"+resume.ID+"/publish", map[string]any{"slug": "taro"})
	if resp.Code != http.StatusOK {
		t.Fatalf("publish: status %d body %s", resp.Code, resp.Body.String())
	}
	var published struct {
		Slug   string `json:"slug"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&published); err != nil {
		t.Fatalf("decode publish: %v", err)
	}
	if published.Status != "active" || published.Slug != "taro" {
		t.Fatalf("publish result = %+v", published)
	}

	// The public read is unauthenticated and sanitized.
	req := httptest.NewRequest(http.MethodGet, "/p/taro", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("public read: status %d body %s", recorder.Code, recorder.Body.String())
	}
	var publicView struct {
		Resume struct {
			Email          string `json:"email"`
			Phone          string `json:"phone"`
			SelfPR         string `json:"selfPr"`
			WorkExperience []any  `json:"workExperience"`
		} `json:"resume"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&publicView); err != nil {
		t.Fatalf("decode public view: %v", err)
	}
	if publicView.Resume.Email != "" || publicView.Resume.Phone != "" {
		t.Fatalf("public view leaks contact data: %+v", publicView.Resume)
	}
	if publicView.Resume.SelfPR == "" || len(publicView.Resume.WorkExperience) != 1 {
		t.Fatalf("public view missing content: %+v", publicView.Resume)
	}

	// After unpublishing, the slug reads as not found.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/resumes/"+resume.ID+"/unpublish", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("unpublish: status %d body %s", resp.Code, resp.Body.String())
	}
	req = httptest.NewRequest(http.MethodGet, "/p/taro", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("public read after unpublish: status %d", recorder.Code)
	}
}

func TestApplicationsEndpoints(t *testing.T) {
	router := buildTestApp(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/applications", map[string]any{
		"companyName": "CompanyX",
		"role":        "Backend Engineer",
		"status":      "applied",
		"appliedAt":   "2024-05-01",
		"tags":        []string{"remote"},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create application: status %d body %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode application: %v", err)
	}

	resp = doJSON(t, router, http.MethodPatch, "/api/v1/applications/"+created.ID+"/status", map[string]any{"status": "interview"})
	if resp.Code != http.StatusOK {
		t.Fatalf("move application: status %d body %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/applications?status=interview", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list applications: status %d body %s", resp.Code, resp.Body.String())
	}
	var list struct {
		Applications []struct {
			Status string `json:"status"`
		} `json:"applications"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Applications) != 1 || list.Applications[0].Status != "interview" {
		t.Fatalf("list = %+v", list.Applications)
	}
}

func TestAuthRequiredOnAPIRoutes(t *testing.T) {
	router := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: status %d, want 401", resp.Code)
	}
}
