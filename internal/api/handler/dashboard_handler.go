package handler

import (
	"vidverse/internal/api/response"
	"vidverse/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats 频道统计
// @Summary 频道统计
// @Description 视频数、总播放量、订阅数、获赞数，短时间缓存
// @Tags 数据面板
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.ChannelStats}
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.ChannelStats(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Channel stats fetched successfully", stats)
}

// Videos 频道全部视频（含未发布）
// @Summary 频道视频
// @Tags 数据面板
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.Page[dto.VideoInfo]}
// @Router /dashboard/videos [get]
func (h *DashboardHandler) Videos(c *gin.Context) {
	page, err := h.dashboardService.ChannelVideos(c.Request.Context(), currentUserID(c), parsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Channel videos fetched successfully", page)
}
