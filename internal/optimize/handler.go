package optimize

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/analyses"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the optimize service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches optimization routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/optimize/section", h.section)
	rg.POST("/optimize/resume", h.fullResume)
	rg.POST("/optimize/guide", h.guide)
	rg.POST("/optimize/template", h.customTemplate)
}

type sectionRequest struct {
	SectionType string `json:"sectionType"`
}

func (h *Handler) section(c *gin.Context) {
	username := middleware.UsernameFromContext(c)

	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.SectionType) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "sectionType is required", nil)
		return
	}

	optimized, err := h.Svc.Section(c.Request.Context(), username, strings.TrimSpace(req.SectionType))
	if err != nil {
		respondOptimizeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"sectionType": req.SectionType,
		"optimized":   optimized,
	})
}

func (h *Handler) fullResume(c *gin.Context) {
	username := middleware.UsernameFromContext(c)

	resume, err := h.Svc.FullResume(c.Request.Context(), username)
	if err != nil {
		respondOptimizeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"optimizedResume": resume})
}

func (h *Handler) guide(c *gin.Context) {
	username := middleware.UsernameFromContext(c)

	guide, err := h.Svc.Guide(c.Request.Context(), username)
	if err != nil {
		respondOptimizeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"improvementGuide": guide})
}

type customTemplateRequest struct {
	UserProfile string `json:"userProfile"`
}

func (h *Handler) customTemplate(c *gin.Context) {
	username := middleware.UsernameFromContext(c)

	var req customTemplateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	template, err := h.Svc.CustomTemplate(c.Request.Context(), username, req.UserProfile)
	if err != nil {
		respondOptimizeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"template": template})
}

func respondOptimizeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analyses.ErrNoAnalysis):
		respond.Error(c, http.StatusNotFound, "not_found", "no analysis yet, upload a resume first", nil)
	case errors.Is(err, analyses.ErrModelCall):
		respond.Error(c, http.StatusBadGateway, "llm_error", "model call failed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "optimization failed", nil)
	}
}
