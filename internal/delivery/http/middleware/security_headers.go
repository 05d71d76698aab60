package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds baseline security headers to all responses.
// The API only serves JSON, apart from the swagger UI.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking by disallowing framing
		c.Header("X-Frame-Options", "DENY")

		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Submissions carry personal data
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
