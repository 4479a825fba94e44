package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"career-backend/internal/documents"
	"career-backend/internal/llm"
	"career-backend/internal/usage"
)

var (
	ErrInvalidInput = errors.New("invalid parse input")
	ErrNotFound     = errors.New("document not found")
)

// maxInputChars truncates pathological inputs before they hit the token
// ceiling and fail with a provider error.
const maxInputChars = 60_000

// Service runs text through the completion client and validates the
// structured result. Results are never cached; the model is
// non-deterministic even at temperature zero.
type Service struct {
	LLM   llm.Client
	Docs  *documents.Service
	Usage *usage.Service
}

// NewService constructs a Service.
func NewService(client llm.Client, docs *documents.Service, meter *usage.Service) *Service {
	return &Service{LLM: client, Docs: docs, Usage: meter}
}

// Input identifies the text to parse: either inline text or a
// previously uploaded document.
type Input struct {
	Text       string `json:"text"`
	DocumentID string `json:"documentId"`
}

// ParseResume extracts structured resume data from text or a document.
func (s *Service) ParseResume(ctx context.Context, userID string, in Input) (ParsedResume, error) {
	text, err := s.resolveText(ctx, userID, in)
	if err != nil {
		return ParsedResume{}, err
	}
	if err := s.consume(ctx, userID); err != nil {
		return ParsedResume{}, err
	}

	raw, err := s.LLM.CompleteJSON(ctx, llm.CompleteInput{
		Instruction: resumeInstruction,
		UserText:    text,
	})
	if err != nil {
		return ParsedResume{}, err
	}

	var parsed ParsedResume
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ParsedResume{}, llm.NewUpstreamError(llm.ErrCodeUnparseable, true, err)
	}
	if err := parsed.Validate(); err != nil {
		return ParsedResume{}, llm.NewUpstreamError(llm.ErrCodeUnparseable, true, err)
	}
	return parsed, nil
}

// ParseJobPosting extracts structured job posting data from text or a
// document.
func (s *Service) ParseJobPosting(ctx context.Context, userID string, in Input) (ParsedJobPosting, error) {
	text, err := s.resolveText(ctx, userID, in)
	if err != nil {
		return ParsedJobPosting{}, err
	}
	if err := s.consume(ctx, userID); err != nil {
		return ParsedJobPosting{}, err
	}

	raw, err := s.LLM.CompleteJSON(ctx, llm.CompleteInput{
		Instruction: jobPostingInstruction,
		UserText:    text,
	})
	if err != nil {
		return ParsedJobPosting{}, err
	}

	var parsed ParsedJobPosting
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ParsedJobPosting{}, llm.NewUpstreamError(llm.ErrCodeUnparseable, true, err)
	}
	if err := parsed.Validate(); err != nil {
		return ParsedJobPosting{}, llm.NewUpstreamError(llm.ErrCodeUnparseable, true, err)
	}
	return parsed, nil
}

func (s *Service) resolveText(ctx context.Context, userID string, in Input) (string, error) {
	text := strings.TrimSpace(in.Text)
	docID := strings.TrimSpace(in.DocumentID)

	switch {
	case text != "" && docID != "":
		return "", fmt.Errorf("%w: provide text or documentId, not both", ErrInvalidInput)
	case text == "" && docID == "":
		return "", fmt.Errorf("%w: text or documentId is required", ErrInvalidInput)
	case docID != "":
		extracted, err := s.Docs.ExtractedText(ctx, userID, docID)
		if err != nil {
			if errors.Is(err, documents.ErrNotFound) {
				return "", ErrNotFound
			}
			return "", err
		}
		text = strings.TrimSpace(extracted)
		if text == "" {
			return "", fmt.Errorf("%w: document has no extractable text", ErrInvalidInput)
		}
	}

	if len(text) > maxInputChars {
		cut := maxInputChars
		// Back up so the cut never splits a multi-byte rune.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text, nil
}

// consume spends one unit of the user's parse quota. A validated input
// that is rejected here spends nothing.
func (s *Service) consume(ctx context.Context, userID string) error {
	if s.Usage == nil {
		return nil
	}
	_, err := s.Usage.Consume(ctx, userID, 1)
	return err
}
