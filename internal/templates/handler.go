package templates

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/respond"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches template library routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.list)
	rg.GET("/templates/:key", h.get)
}

func (h *Handler) list(c *gin.Context) {
	if industry := c.Query("industry"); industry != "" {
		respond.JSON(c, http.StatusOK, ByIndustry(industry))
		return
	}
	respond.JSON(c, http.StatusOK, List())
}

func (h *Handler) get(c *gin.Context) {
	template, ok := Get(c.Param("key"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "unknown template", nil)
		return
	}
	respond.JSON(c, http.StatusOK, template)
}
