package resumes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the resume service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.remove)
	rg.POST("/resumes/:id/duplicate", h.duplicate)
	rg.POST("/resumes/:id/archive", h.archive)
	rg.POST("/resumes/:id/unarchive", h.unarchive)
	rg.POST("/resumes/:id/primary", h.setPrimary)
}

type createRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, err := h.Svc.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		writeResumeError(c, err, "failed to create resume")
		return
	}
	respond.Created(c, resume)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	includeArchived := c.Query("includeArchived") == "true"

	list, err := h.Svc.List(c.Request.Context(), userID, includeArchived)
	if err != nil {
		writeResumeError(c, err, "failed to list resumes")
		return
	}
	if list == nil {
		list = []Resume{}
	}
	respond.OK(c, gin.H{"resumes": list})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	resume, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeResumeError(c, err, "failed to get resume")
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		writeResumeError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeResumeError(c, err, "failed to delete resume")
		return
	}
	respond.NoContent(c)
}

type duplicateRequest struct {
	Name string `json:"name"`
}

func (h *Handler) duplicate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	req := duplicateRequest{}
	// Body is optional; an empty body duplicates under a derived name.
	_ = c.ShouldBindJSON(&req)

	resume, err := h.Svc.Duplicate(c.Request.Context(), userID, c.Param("id"), req.Name)
	if err != nil {
		writeResumeError(c, err, "failed to duplicate resume")
		return
	}
	respond.Created(c, resume)
}

func (h *Handler) archive(c *gin.Context) {
	h.setArchived(c, true)
}

func (h *Handler) unarchive(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *Handler) setArchived(c *gin.Context, archived bool) {
	userID := middleware.UserIDFromContext(c)

	resume, err := h.Svc.Archive(c.Request.Context(), userID, c.Param("id"), archived)
	if err != nil {
		writeResumeError(c, err, "failed to change archive state")
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) setPrimary(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	resume, err := h.Svc.SetPrimary(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeResumeError(c, err, "failed to set primary resume")
		return
	}
	respond.OK(c, resume)
}

func writeResumeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrPrimaryDelete):
		respond.Error(c, http.StatusConflict, "primary_resume", "primary resume cannot be deleted", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
