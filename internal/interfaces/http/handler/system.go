package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandler handles liveness probing.
type SystemHandler struct {
	BaseHandler
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/healthz", h.Healthz)
}

// Healthz reports process liveness.
func (h *SystemHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
