package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"career-backend/internal/llm"
	"career-backend/internal/usage"
)

type fakeLLM struct {
	response string
	err      error
	lastIn   llm.CompleteInput
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, in llm.CompleteInput) (json.RawMessage, error) {
	f.lastIn = in
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.response), nil
}

func TestParseResumeReturnsStructuredData(t *testing.T) {
	fake := &fakeLLM{response: `{
		"fullName": "Taro Yamada",
		"selfPr": "Backend engineer.",
		"workExperience": [{
			"companyName": "CompanyX",
			"startDate": "2019-04",
			"isCurrent": true,
			"positions": [{"title": "Engineer", "startDate": "2019-04", "isCurrent": true, "responsibilities": [], "achievements": []}]
		}],
		"skills": [{"name": "Go", "yearsUsed": 5}]
	}`}
	svc := NewService(fake, nil, nil)

	parsed, err := svc.ParseResume(context.Background(), "user-1", Input{Text: "raw resume text"})
	if err != nil {
		t.Fatalf("ParseResume: %v", err)
	}
	if parsed.FullName != "Taro Yamada" {
		t.Fatalf("fullName = %q", parsed.FullName)
	}
	if len(parsed.WorkExperience) != 1 || parsed.WorkExperience[0].CompanyName != "CompanyX" {
		t.Fatalf("workExperience = %+v", parsed.WorkExperience)
	}
	if fake.lastIn.UserText != "raw resume text" {
		t.Fatalf("user text = %q", fake.lastIn.UserText)
	}
	if fake.lastIn.Instruction == "" {
		t.Fatal("instruction template not sent")
	}
}

func TestParseResumeRejectsMalformedJSON(t *testing.T) {
	svc := NewService(&fakeLLM{response: `Here is the resume: {"fullName": ...`}, nil, nil)

	_, err := svc.ParseResume(context.Background(), "user-1", Input{Text: "text"})
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if upstream.Code != llm.ErrCodeUnparseable {
		t.Fatalf("code = %q, want unparseable_response", upstream.Code)
	}
	if !upstream.Retryable {
		t.Fatal("unparseable response must be retryable")
	}
}

func TestParseResumeRejectsSchemaViolations(t *testing.T) {
	// Valid JSON, but a work experience without a company name.
	svc := NewService(&fakeLLM{response: `{
		"workExperience": [{"companyName": "", "positions": []}]
	}`}, nil, nil)

	_, err := svc.ParseResume(context.Background(), "user-1", Input{Text: "text"})
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) || upstream.Code != llm.ErrCodeUnparseable {
		t.Fatalf("err = %v, want unparseable_response", err)
	}
}

func TestParsePropagatesProviderClassification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantRetryable bool
	}{
		{"rate limited", llm.NewUpstreamError(llm.ErrCodeRateLimited, true, errors.New("429")), true},
		{"quota exhausted", llm.NewUpstreamError(llm.ErrCodeQuotaExceeded, false, errors.New("quota")), false},
		{"misconfigured", llm.NewUpstreamError(llm.ErrCodeMisconfigured, false, errors.New("401")), false},
		{"server error", llm.NewUpstreamError(llm.ErrCodeServer, true, errors.New("500")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeLLM{err: tt.err}, nil, nil)
			_, err := svc.ParseResume(context.Background(), "user-1", Input{Text: "text"})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := llm.IsRetryable(err); got != tt.wantRetryable {
				t.Fatalf("IsRetryable = %v, want %v", got, tt.wantRetryable)
			}
		})
	}
}

func TestParseJobPosting(t *testing.T) {
	svc := NewService(&fakeLLM{response: `{
		"companyName": "CompanyX",
		"role": "Backend Engineer",
		"requiredSkills": ["Go", "PostgreSQL"]
	}`}, nil, nil)

	parsed, err := svc.ParseJobPosting(context.Background(), "user-1", Input{Text: "posting text"})
	if err != nil {
		t.Fatalf("ParseJobPosting: %v", err)
	}
	if parsed.Role != "Backend Engineer" || len(parsed.RequiredSkills) != 2 {
		t.Fatalf("parsed = %+v", parsed)
	}
}

func TestParseInputValidation(t *testing.T) {
	svc := NewService(&fakeLLM{response: `{}`}, nil, nil)
	ctx := context.Background()

	if _, err := svc.ParseResume(ctx, "user-1", Input{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty input err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.ParseResume(ctx, "user-1", Input{Text: "x", DocumentID: "doc-1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("both inputs err = %v, want ErrInvalidInput", err)
	}
}

func TestParseTruncatesOnRuneBoundary(t *testing.T) {
	fake := &fakeLLM{response: `{"fullName": "Taro Yamada"}`}
	svc := NewService(fake, nil, nil)

	// Pad so the cutoff lands inside a three-byte kana sequence.
	text := strings.Repeat("a", maxInputChars-1) + strings.Repeat("あ", 50)

	if _, err := svc.ParseResume(context.Background(), "user-1", Input{Text: text}); err != nil {
		t.Fatalf("ParseResume: %v", err)
	}
	sent := fake.lastIn.UserText
	if len(sent) > maxInputChars {
		t.Fatalf("sent %d bytes, want at most %d", len(sent), maxInputChars)
	}
	if !utf8.ValidString(sent) {
		t.Fatal("truncation split a multi-byte rune")
	}
	if len(sent) != maxInputChars-1 {
		t.Fatalf("sent %d bytes, want %d", len(sent), maxInputChars-1)
	}
}

func TestParseStopsWhenQuotaExhausted(t *testing.T) {
	repo := usage.NewMemoryRepo()
	meter := usage.NewService(repo)
	fake := &fakeLLM{response: `{"fullName": "Taro Yamada"}`}
	svc := NewService(fake, nil, meter)
	ctx := context.Background()

	limit, err := meter.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get usage: %v", err)
	}
	if _, err := meter.Consume(ctx, "user-1", limit.Limit); err != nil {
		t.Fatalf("exhaust quota: %v", err)
	}

	_, err = svc.ParseResume(ctx, "user-1", Input{Text: "resume text"})
	if !errors.Is(err, usage.ErrLimitReached) {
		t.Fatalf("err = %v, want ErrLimitReached", err)
	}
	if fake.lastIn.UserText != "" {
		t.Fatal("provider called despite exhausted quota")
	}
}

func TestParseSpendsOneUnitPerCall(t *testing.T) {
	meter := usage.NewService(usage.NewMemoryRepo())
	svc := NewService(&fakeLLM{response: `{"fullName": "Taro Yamada", "role": "Engineer"}`}, nil, meter)
	ctx := context.Background()

	if _, err := svc.ParseResume(ctx, "user-1", Input{Text: "text"}); err != nil {
		t.Fatalf("ParseResume: %v", err)
	}
	if _, err := svc.ParseJobPosting(ctx, "user-1", Input{Text: "text"}); err != nil {
		t.Fatalf("ParseJobPosting: %v", err)
	}

	u, err := meter.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get usage: %v", err)
	}
	if u.Used != 2 {
		t.Fatalf("used = %d, want 2", u.Used)
	}

	// Invalid input is rejected before metering.
	if _, err := svc.ParseResume(ctx, "user-1", Input{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	u, _ = meter.Get(ctx, "user-1")
	if u.Used != 2 {
		t.Fatalf("used = %d after rejected input, want 2", u.Used)
	}
}
