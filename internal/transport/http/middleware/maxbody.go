package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "booking-platform/internal/transport/http/response"
)

// MaxBodyBytes limits the request body to n bytes. Bodies without a declared
// length are cut off by the reader and surface as a bind error.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			abort(c, resp.CodeRequestTooLarge, "request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
