package handler

import (
	"vidverse/internal/api/response"
	"vidverse/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

type likeToggler func(c *gin.Context, userID, targetID int64) (bool, error)

// toggle 三种点赞目标共用：解析 ID、切换、按结果返回消息
func (h *LikeHandler) toggle(c *gin.Context, param string, invalid *service.AppError, fn likeToggler) {
	targetID, ok := pathID(c, param, invalid)
	if !ok {
		return
	}

	liked, err := fn(c, currentUserID(c), targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Like removed"
	if liked {
		message = "Liked successfully"
	}
	response.OK(c, message, gin.H{"isLiked": liked})
}

// ToggleVideoLike 点赞/取消点赞视频
// @Summary 切换视频点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response "isLiked 为切换后的状态"
// @Failure 404 {object} response.Response "视频不存在"
// @Router /likes/toggle/v/{videoId} [post]
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, "videoId", service.ErrInvalidVideoID, func(c *gin.Context, userID, id int64) (bool, error) {
		return h.likeService.ToggleVideoLike(c.Request.Context(), userID, id)
	})
}

// ToggleCommentLike 点赞/取消点赞评论
// @Summary 切换评论点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论ID"
// @Success 200 {object} response.Response
// @Router /likes/toggle/c/{commentId} [post]
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, "commentId", service.ErrInvalidCommentID, func(c *gin.Context, userID, id int64) (bool, error) {
		return h.likeService.ToggleCommentLike(c.Request.Context(), userID, id)
	})
}

// ToggleTweetLike 点赞/取消点赞动态
// @Summary 切换动态点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态ID"
// @Success 200 {object} response.Response
// @Router /likes/toggle/t/{tweetId} [post]
func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, "tweetId", service.ErrInvalidTweetID, func(c *gin.Context, userID, id int64) (bool, error) {
		return h.likeService.ToggleTweetLike(c.Request.Context(), userID, id)
	})
}

// LikedVideos 我点赞过的视频
// @Summary 点赞过的视频
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.VideoInfo}
// @Router /likes/videos [get]
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	videos, err := h.likeService.LikedVideos(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Liked videos fetched successfully", videos)
}
