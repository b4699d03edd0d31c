package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "coinwatch/internal/errors"
	"coinwatch/internal/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error as
// {"error":{"code","message"}}. Errors that are not an AppError become
// INTERNAL_ERROR so internal details never reach the client. Nothing is
// written when the handler already produced a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := asAppError(err)

		log := logger.Get().With(
			"request_id", RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"code", appErr.Code,
		)
		switch {
		case appErr.StatusCode >= 500:
			log.Errorw("request failed", "error", err.Error())
		case appErr.Internal != nil:
			log.Warnw("request rejected", "error", err.Error())
		}

		c.JSON(appErr.StatusCode, gin.H{"error": appErr})
	}
}

func asAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
