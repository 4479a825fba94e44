package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Error codes surfaced to callers alongside the retryable flag.
const (
	ErrCodeRateLimited   = "rate_limited"
	ErrCodeQuotaExceeded = "quota_exceeded"
	ErrCodeTimeout       = "timeout"
	ErrCodeNetwork       = "network_error"
	ErrCodeServer        = "server_error"
	ErrCodeBadRequest    = "bad_request"
	ErrCodeMisconfigured = "misconfigured"
	ErrCodeEmptyResponse = "empty_response"
	ErrCodeUnparseable   = "unparseable_response"
)

// UpstreamError classifies a provider failure so the caller can decide
// whether to offer a retry affordance.
type UpstreamError struct {
	Code      string
	Retryable bool
	Err       error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("llm %s", e.Code)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError builds a classified provider error.
func NewUpstreamError(code string, retryable bool, err error) *UpstreamError {
	return &UpstreamError{Code: code, Retryable: retryable, Err: err}
}

// IsRetryable reports whether the error is worth retrying. Unclassified
// errors fall back to transport-level heuristics.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Retryable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "client.timeout") {
		return true
	}
	return false
}

// ErrorCode extracts the classification code, or "unknown".
func ErrorCode(err error) string {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Code
	}
	return "unknown"
}
