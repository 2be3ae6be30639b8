package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/content"
)

// AboutHandler serves the about singleton.
type AboutHandler struct {
	BaseHandler
	about *appcontent.AboutService
}

// NewAboutHandler creates a new AboutHandler
func NewAboutHandler(about *appcontent.AboutService) *AboutHandler {
	return &AboutHandler{about: about}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *AboutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/about", h.Get)
	rg.POST("/about", h.Update)
}

// aboutRequest uses a pointer so a missing key and a JSON null are both
// rejected, while an explicit empty string is accepted.
type aboutRequest struct {
	Content *string `json:"content"`
}

// Get returns the current about content, or the default when none is stored.
func (h *AboutHandler) Get(c *gin.Context) {
	about, err := h.about.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": about.Content})
}

// Update replaces the about content wholesale and echoes the stored value.
func (h *AboutHandler) Update(c *gin.Context) {
	var req aboutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Request body must be JSON with a string 'content' field")
		return
	}
	if req.Content == nil {
		h.BadRequest(c, "Field 'content' is required and must be a string")
		return
	}

	stored, err := h.about.Update(c.Request.Context(), content.AboutContent{Content: *req.Content})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": stored.Content})
}
