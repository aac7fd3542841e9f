package handler

import (
	"vidverse/internal/api/response"
	"vidverse/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchVideos 搜索视频
// @Summary 搜索视频
// @Description Elasticsearch 全文检索标题、描述和作者，不可用时降级为数据库模糊查询
// @Tags 视频
// @Produce json
// @Param q query string true "搜索关键词"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.Page[dto.VideoInfo]} "搜索成功"
// @Failure 400 {object} response.Response "缺少关键词"
// @Router /videos/search [get]
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	page, err := h.searchService.SearchVideos(c.Request.Context(), c.Query("q"), parsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Search results fetched successfully", page)
}
