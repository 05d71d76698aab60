package middleware

import (
	"contact-form-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is echoed back on every response
const RequestIDHeader = "X-Request-ID"

// RequestID reuses an inbound X-Request-ID when it is a valid UUID and
// generates a new one otherwise.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(response.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
