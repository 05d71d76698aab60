package response

import (
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "RequestID"

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Detail    interface{} `json:"detail,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get(RequestIDKey)
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response. When detail is nil the message is repeated
// under "detail" so clients only need to look in one place.
func Error(c *gin.Context, code int, message string, detail interface{}) {
	if detail == nil {
		detail = message
	}

	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Detail:    detail,
		RequestID: requestID(c),
	})
}
