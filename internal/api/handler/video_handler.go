package handler

import (
	"vidverse/internal/api/dto"
	"vidverse/internal/api/response"
	"vidverse/internal/service"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// List 已发布视频列表
// @Summary 视频列表
// @Description 已发布视频，最新在前；query 模糊匹配标题和描述，userId 筛选上传者
// @Tags 视频
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param query query string false "关键字"
// @Param userId query int false "上传者ID"
// @Success 200 {object} response.Response{data=dto.Page[dto.VideoInfo]}
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	q := &dto.VideoListQuery{PageQuery: parsePagination(c), Query: c.Query("query")}
	if raw := c.Query("userId"); raw != "" {
		id, err := service.ParseID(raw, service.ErrInvalidUserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		q.UserID = &id
	}

	page, err := h.videoService.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Videos fetched successfully", page)
}

// Publish 发布视频
// @Summary 发布视频
// @Description 上传视频文件和缩略图，时长由后台探测后回填
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string true "描述"
// @Param videoFile formData file true "视频文件"
// @Param thumbnail formData file true "缩略图"
// @Success 201 {object} response.Response{data=dto.VideoInfo}
// @Failure 400 {object} response.Response "参数无效"
// @Router /videos [post]
func (h *VideoHandler) Publish(c *gin.Context) {
	var req dto.VideoPublishRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}

	videoFile, closeVideo, err := formFile(c, "videoFile", videoLimit())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeVideo()

	thumbnail, closeThumb, err := formFile(c, "thumbnail", imageLimit())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeThumb()

	info, err := h.videoService.Publish(c.Request.Context(), currentUserID(c), &req, videoFile, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Video published successfully", info)
}

// Get 视频详情
// @Summary 视频详情
// @Description 播放量 +1；登录用户记入观看历史并返回是否已点赞
// @Tags 视频
// @Produce json
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoDetail}
// @Failure 404 {object} response.Response "视频不存在"
// @Router /videos/{videoId} [get]
func (h *VideoHandler) Get(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	detail, err := h.videoService.Get(c.Request.Context(), videoID, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video fetched successfully", detail)
}

// Update 修改视频
// @Summary 修改视频
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param title formData string false "标题"
// @Param description formData string false "描述"
// @Param thumbnail formData file false "缩略图"
// @Success 200 {object} response.Response{data=dto.VideoInfo}
// @Failure 404 {object} response.Response "视频不存在或无权限"
// @Router /videos/{videoId} [patch]
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}

	thumbnail, closeThumb, err := formFile(c, "thumbnail", imageLimit())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeThumb()

	info, err := h.videoService.Update(c.Request.Context(), currentUserID(c), videoID, &req, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video updated successfully", info)
}

// Delete 删除视频
// @Summary 删除视频
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response "视频不存在或无权限"
// @Router /videos/{videoId} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), currentUserID(c), videoID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video deleted successfully", gin.H{})
}

// TogglePublish 切换发布状态
// @Summary 切换发布状态
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoInfo}
// @Router /videos/toggle/publish/{videoId} [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	info, err := h.videoService.TogglePublishStatus(c.Request.Context(), currentUserID(c), videoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Publish status toggled", info)
}
