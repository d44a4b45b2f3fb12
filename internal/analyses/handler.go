package analyses

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/util"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyze)
	rg.GET("/analyses/latest", h.latest)
	rg.POST("/analyses/plan", h.improvementPlan)
}

func (h *Handler) analyze(c *gin.Context) {
	username := middleware.UsernameFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	jobDescription := strings.TrimSpace(c.PostForm("jobDescription"))
	if jobDescription == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "jobDescription is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	session, err := h.Svc.Analyze(c.Request.Context(), username, data, mimeType, fileName, jobDescription)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"analysisId": session.AnalysisID,
		"result":     session.Result,
	})
}

func (h *Handler) latest(c *gin.Context) {
	username := middleware.UsernameFromContext(c)

	session, err := h.Svc.Latest(username)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "no analysis yet, upload a resume first", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"analysisId": session.AnalysisID,
		"result":     session.Result,
	})
}

func (h *Handler) improvementPlan(c *gin.Context) {
	username := middleware.UsernameFromContext(c)

	plan, err := h.Svc.ImprovementPlan(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, ErrNoAnalysis) {
			respond.Error(c, http.StatusNotFound, "not_found", "no analysis yet, upload a resume first", nil)
			return
		}
		respondAnalysisError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"improvementPlan": plan})
}

// respondAnalysisError maps service failures to the error envelope. Parse and
// shape failures include the raw model text so the caller can see what came
// back instead of a silent empty result.
func respondAnalysisError(c *gin.Context, err error) {
	var parseErr *ParseError
	var shapeErr *ShapeError
	switch {
	case errors.As(err, &parseErr):
		respond.Error(c, http.StatusBadGateway, "parse_error", "model response could not be parsed", []map[string]string{
			{"field": "raw", "issue": truncateRaw(parseErr.Raw)},
		})
	case errors.As(err, &shapeErr):
		respond.Error(c, http.StatusBadGateway, "schema_mismatch", "model response is missing required fields", []map[string]string{
			{"field": strings.Join(shapeErr.Missing, ", "), "issue": "missing"},
		})
	case errors.Is(err, ErrModelCall):
		respond.Error(c, http.StatusBadGateway, "llm_error", "model call failed", nil)
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	}
}
