package handler

import (
	"vidverse/internal/api/dto"
	"vidverse/internal/api/response"
	"vidverse/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create 创建播放列表
// @Summary 创建播放列表
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PlaylistCreateRequest true "名称、描述，可选首个视频"
// @Success 201 {object} response.Response{data=dto.PlaylistInfo}
// @Router /playlist [post]
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}

	playlist, err := h.playlistService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Playlist created successfully", playlist)
}

// ListByUser 用户的播放列表
// @Summary 用户播放列表
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param userId path int true "用户ID"
// @Success 200 {object} response.Response{data=[]dto.PlaylistInfo}
// @Router /playlist/user/{userId} [get]
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId", service.ErrInvalidUserID)
	if !ok {
		return
	}

	playlists, err := h.playlistService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Playlists fetched successfully", playlists)
}

// Get 播放列表详情
// @Summary 播放列表详情
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param playlistId path int true "播放列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistDetail}
// @Failure 404 {object} response.Response "播放列表不存在"
// @Router /playlist/{playlistId} [get]
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId", service.ErrInvalidPlaylistID)
	if !ok {
		return
	}

	detail, err := h.playlistService.Get(c.Request.Context(), playlistID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Playlist fetched successfully", detail)
}

// AddVideo 添加视频到播放列表
// @Summary 添加视频
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param playlistId path int true "播放列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo}
// @Failure 404 {object} response.Response "视频或播放列表不存在"
// @Failure 409 {object} response.Response "视频已在列表中"
// @Router /playlist/add/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	videoID, playlistID, ok := videoAndPlaylist(c)
	if !ok {
		return
	}

	playlist, err := h.playlistService.AddVideo(c.Request.Context(), currentUserID(c), playlistID, videoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video added to playlist", playlist)
}

// RemoveVideo 从播放列表移除视频
// @Summary 移除视频
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param playlistId path int true "播放列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo}
// @Failure 409 {object} response.Response "视频不在列表中"
// @Router /playlist/remove/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	videoID, playlistID, ok := videoAndPlaylist(c)
	if !ok {
		return
	}

	playlist, err := h.playlistService.RemoveVideo(c.Request.Context(), currentUserID(c), playlistID, videoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video removed from playlist", playlist)
}

// Update 修改播放列表
// @Summary 修改播放列表
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param playlistId path int true "播放列表ID"
// @Param request body dto.PlaylistUpdateRequest true "名称/描述"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo}
// @Router /playlist/{playlistId} [patch]
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId", service.ErrInvalidPlaylistID)
	if !ok {
		return
	}

	var req dto.PlaylistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}

	playlist, err := h.playlistService.Update(c.Request.Context(), currentUserID(c), playlistID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Playlist updated successfully", playlist)
}

// Delete 删除播放列表
// @Summary 删除播放列表
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param playlistId path int true "播放列表ID"
// @Success 200 {object} response.Response
// @Router /playlist/{playlistId} [delete]
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId", service.ErrInvalidPlaylistID)
	if !ok {
		return
	}

	if err := h.playlistService.Delete(c.Request.Context(), currentUserID(c), playlistID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Playlist deleted successfully", gin.H{})
}

// videoAndPlaylist 视频 ID 先于播放列表 ID 校验
func videoAndPlaylist(c *gin.Context) (int64, int64, bool) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return 0, 0, false
	}
	playlistID, ok := pathID(c, "playlistId", service.ErrInvalidPlaylistID)
	if !ok {
		return 0, 0, false
	}
	return videoID, playlistID, true
}
