package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
)

// DisplayHandler serves the public, read-only view of the collection.
type DisplayHandler struct {
	BaseHandler
	projects   *appcontent.ProjectService
	projection *appcontent.ProjectionService
}

// NewDisplayHandler creates a new DisplayHandler
func NewDisplayHandler(projects *appcontent.ProjectService, projection *appcontent.ProjectionService) *DisplayHandler {
	return &DisplayHandler{projects: projects, projection: projection}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *DisplayHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects/display", h.List)
}

// List returns the projection: newest first, descriptions linkified.
func (h *DisplayHandler) List(c *gin.Context) {
	records, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": h.projection.Project(records)})
}
