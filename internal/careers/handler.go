package careers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the career service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches career routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/careers", h.create)
	rg.GET("/careers", h.list)
	rg.GET("/careers/tenure", h.tenure)
	rg.POST("/careers/convert", h.convert)
	rg.GET("/careers/:id", h.get)
	rg.PUT("/careers/:id", h.update)
	rg.DELETE("/careers/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	career, err := h.Svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeCareerError(c, err, "failed to create career")
		return
	}
	respond.Created(c, career)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	records, err := h.Svc.List(c.Request.Context(), userID, c.Query("company"))
	if err != nil {
		writeCareerError(c, err, "failed to list careers")
		return
	}
	if records == nil {
		records = []Career{}
	}
	respond.OK(c, gin.H{"careers": records})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	career, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeCareerError(c, err, "failed to get career")
		return
	}
	respond.OK(c, career)
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	career, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		writeCareerError(c, err, "failed to update career")
		return
	}
	respond.OK(c, career)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeCareerError(c, err, "failed to delete career")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) tenure(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	months, formatted, err := h.Svc.CompanyTenure(c.Request.Context(), userID, c.Query("company"))
	if err != nil {
		writeCareerError(c, err, "failed to compute tenure")
		return
	}
	respond.OK(c, gin.H{
		"company":   c.Query("company"),
		"months":    months,
		"formatted": formatted,
	})
}

func (h *Handler) convert(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	converted, err := h.Svc.Convert(c.Request.Context(), userID)
	if err != nil {
		writeCareerError(c, err, "failed to convert careers")
		return
	}
	respond.OK(c, gin.H{"workExperiences": converted})
}

func writeCareerError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "career not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
