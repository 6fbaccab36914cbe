package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abcall/clients/internal/api/dto"
)

// ErrorHandlerMiddleware turns panics and unanswered handler errors into a
// generic 500. The underlying error is logged, never sent to the caller.
func ErrorHandlerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(c.Request.Context(), "panic while handling request",
					"method", c.Request.Method,
					"path", c.FullPath(),
					"panic", rec,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, internalError())
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			logger.ErrorContext(c.Request.Context(), "request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"error", c.Errors.Last().Err,
			)
			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, internalError())
			}
		}
	}
}

func internalError() dto.ErrorResponse {
	return dto.ErrorResponse{
		Error:   "Internal Server Error",
		Message: "An unexpected error occurred",
		Code:    http.StatusInternalServerError,
	}
}
