package middleware

import (
	"vidverse/internal/api/response"
	"vidverse/internal/service"
	"vidverse/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery 恢复中间件，捕获panic
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("request_id", c.GetString(ContextKeyRequestID)),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				response.Abort(c, service.ErrInternal)
			}
		}()

		c.Next()
	}
}
