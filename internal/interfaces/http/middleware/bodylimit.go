package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. A declared
// Content-Length over the limit is rejected before the body is read;
// MaxBytesReader backstops chunked requests that lie about their size.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(
				dto.ErrCodePayloadTooLarge,
				"Request body exceeds maximum allowed size",
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
