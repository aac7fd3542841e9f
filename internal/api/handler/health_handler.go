package handler

import (
	"vidverse/internal/api/response"

	"github.com/gin-gonic/gin"
)

// HealthCheck 健康检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} response.Response
// @Router /healthcheck [get]
func HealthCheck(c *gin.Context) {
	response.OK(c, "OK", "OK")
}
