package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"career-backend/internal/llm"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements llm.Client using OpenAI Chat Completions with
// json_object output and temperature pinned to zero.
type Client struct {
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client. timeout bounds each call;
// maxTokens caps completion length.
func NewClient(apiKey, model string, timeout time.Duration, maxTokens int) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Client{
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// CompleteJSON sends the instruction and user text and returns validated raw JSON.
func (c *Client) CompleteJSON(ctx context.Context, input llm.CompleteInput) (json.RawMessage, error) {
	temp := float32(0)
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: input.Instruction},
			{Role: "user", Content: input.UserText},
		},
		Temperature: &temp,
		MaxTokens:   c.maxTokens,
		ResponseFormat: responseFormat{
			Type: "json_object",
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, llm.NewUpstreamError(llm.ErrCodeTimeout, true, err)
		}
		return nil, llm.NewUpstreamError(llm.ErrCodeNetwork, true, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, llm.NewUpstreamError(llm.ErrCodeNetwork, true, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, classifyStatus(resp.StatusCode, "", fmt.Errorf("openai response parse: %w", err))
	}
	if parsed.Error != nil {
		return nil, classifyStatus(resp.StatusCode, parsed.Error.Type,
			fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type))
	}
	if resp.StatusCode >= 400 {
		return nil, classifyStatus(resp.StatusCode, "", fmt.Errorf("openai http status %d", resp.StatusCode))
	}
	if len(parsed.Choices) == 0 {
		return nil, llm.NewUpstreamError(llm.ErrCodeEmptyResponse, true, errors.New("openai response missing choices"))
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, llm.NewUpstreamError(llm.ErrCodeEmptyResponse, true, errors.New("openai response empty content"))
	}
	logUsage(c.model, parsed.Usage)

	if !json.Valid([]byte(content)) {
		return nil, llm.NewUpstreamError(llm.ErrCodeUnparseable, true, errors.New("invalid JSON from OpenAI"))
	}
	return json.RawMessage(content), nil
}

// classifyStatus maps provider failures onto the retryable taxonomy:
// quota exhaustion and malformed requests are terminal, rate limits and
// server-side failures are worth retrying.
func classifyStatus(status int, errType string, err error) error {
	switch {
	case errType == "insufficient_quota":
		return llm.NewUpstreamError(llm.ErrCodeQuotaExceeded, false, err)
	case status == http.StatusTooManyRequests:
		return llm.NewUpstreamError(llm.ErrCodeRateLimited, true, err)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return llm.NewUpstreamError(llm.ErrCodeMisconfigured, false, err)
	case status == http.StatusBadRequest || status == http.StatusRequestEntityTooLarge:
		return llm.NewUpstreamError(llm.ErrCodeBadRequest, false, err)
	case status >= 500:
		return llm.NewUpstreamError(llm.ErrCodeServer, true, err)
	default:
		return llm.NewUpstreamError(llm.ErrCodeServer, false, err)
	}
}

func logUsage(model string, usage *struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}) {
	if usage == nil {
		log.Printf("llm response model=%s", model)
		return
	}
	log.Printf("llm response model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
}

var _ llm.Client = (*Client)(nil)
