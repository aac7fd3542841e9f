package response

import (
	"net/http"

	"vidverse/pkg/apperr"
	"vidverse/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应，statusCode 与 HTTP 状态码一致
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// JSON 按状态码输出统一响应
func JSON(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data)
}

// Error 将任意错误映射为统一响应；非 AppError 记日志并返回 500
func Error(c *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		logger.Error("Unhandled error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
	}
	JSON(c, appErr.Status, appErr.Message, nil)
}

// Abort 中间件中使用：输出错误并终止后续处理
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
