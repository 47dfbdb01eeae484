package middleware

import (
	"leo-chat/internal/transport/httpdto"
	"leo-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler logs errors attached with c.Error and writes a response if the handler did not.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.WithContext(c.Request.Context()).Error("request error", zap.Error(err))
		}
		if !c.Writer.Written() {
			c.JSON(c.Writer.Status(), httpdto.NewErrorResponse(err.Error(), "INTERNAL_ERROR"))
		}
	}
}
