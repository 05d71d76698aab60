package middleware

import (
	"errors"
	"net/http"

	"contact-form-backend/internal/delivery/http/response"
	"contact-form-backend/pkg/apperror"
	"contact-form-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil && appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"request_id", c.GetString(response.RequestIDKey),
					"path", c.FullPath(),
					"status", appErr.Code,
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Detail)
			return
		}

		// SECURITY: never expose internal error details to clients
		logger.Log.Error("internal server error",
			"request_id", c.GetString(response.RequestIDKey),
			"path", c.FullPath(),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
