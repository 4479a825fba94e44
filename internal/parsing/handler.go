package parsing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/llm"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/usage"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the parsing service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches parse routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parse/resume", h.parseResume)
	rg.POST("/parse/job-posting", h.parseJobPosting)
}

func (h *Handler) parseResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req Input
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	parsed, err := h.Svc.ParseResume(c.Request.Context(), userID, req)
	if err != nil {
		writeParseError(c, err)
		return
	}
	respond.OK(c, gin.H{"resume": parsed})
}

func (h *Handler) parseJobPosting(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req Input
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	parsed, err := h.Svc.ParseJobPosting(c.Request.Context(), userID, req)
	if err != nil {
		writeParseError(c, err)
		return
	}
	respond.OK(c, gin.H{"jobPosting": parsed})
}

// writeParseError maps provider failures to an upstream error carrying
// the isRetryable flag so the UI can offer a "try again" action.
func writeParseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		return
	case errors.Is(err, usage.ErrLimitReached):
		respond.Error(c, http.StatusTooManyRequests, "usage_limit_reached", "parse limit reached for the current period", nil)
		return
	case errors.Is(err, llm.ErrNotConfigured):
		respond.RetryableError(c, http.StatusBadGateway, llm.ErrCodeMisconfigured, "AI provider not configured", false)
		return
	}

	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		telemetry.Warn("parse.upstream_error", map[string]any{
			"code":      upstream.Code,
			"retryable": upstream.Retryable,
			"error":     upstream.Error(),
		})
		status := http.StatusBadGateway
		if upstream.Retryable {
			status = http.StatusServiceUnavailable
		}
		respond.RetryableError(c, status, upstream.Code, "AI provider request failed", upstream.Retryable)
		return
	}

	if llm.IsRetryable(err) {
		respond.RetryableError(c, http.StatusServiceUnavailable, llm.ErrCodeNetwork, "AI provider request failed", true)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to parse text", nil)
}
