package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	mediaapp "github.com/portfolio/backend/internal/application/media"
)

// UploadHandler accepts media uploads and returns the stored reference.
type UploadHandler struct {
	BaseHandler
	uploads *mediaapp.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploads *mediaapp.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.Upload)
}

// Upload stores the multipart 'file' field and returns its URL and kind.
// The reference is not attached to any project here; that is a separate
// collection update.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Multipart field 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Uploaded file could not be read")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	stored, err := h.uploads.Store(c.Request.Context(), fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       stored.URL,
		"mediaType": string(stored.Kind),
	})
}
