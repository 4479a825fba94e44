package publishedresumes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the publish service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the owner-facing publish routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/published-resumes", h.list)
	rg.POST("/resumes/:id/publish", h.publish)
	rg.POST("/resumes/:id/unpublish", h.unpublish)
	rg.GET("/resumes/:id/published", h.getBySource)
}

// RegisterPublicRoutes attaches the unauthenticated slug read.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/p/:slug", h.publicBySlug)
}

func (h *Handler) publish(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	req := PublishInput{}
	// Body is optional; a bare publish uses defaults.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	view, err := h.Svc.Publish(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		writePublishError(c, err, "failed to publish resume")
		return
	}
	respond.OK(c, view)
}

func (h *Handler) unpublish(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	view, err := h.Svc.Unpublish(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writePublishError(c, err, "failed to unpublish resume")
		return
	}
	respond.OK(c, view)
}

func (h *Handler) getBySource(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	view, err := h.Svc.GetBySource(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writePublishError(c, err, "failed to get published resume")
		return
	}
	respond.OK(c, view)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	views, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		writePublishError(c, err, "failed to list published resumes")
		return
	}
	if views == nil {
		views = []StatusView{}
	}
	respond.OK(c, gin.H{"publishedResumes": views})
}

func (h *Handler) publicBySlug(c *gin.Context) {
	view, err := h.Svc.PublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resume", nil)
		return
	}
	respond.OK(c, view)
}

func writePublishError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrSlugTaken):
		respond.Error(c, http.StatusConflict, "slug_taken", "slug already in use", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
