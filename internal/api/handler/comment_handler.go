package handler

import (
	"vidverse/internal/api/dto"
	"vidverse/internal/api/response"
	"vidverse/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List 视频评论
// @Summary 视频评论列表
// @Tags 评论
// @Produce json
// @Param videoId path int true "视频ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.Page[dto.CommentInfo]}
// @Router /comments/{videoId} [get]
func (h *CommentHandler) List(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	page, err := h.commentService.List(c.Request.Context(), currentUserID(c), videoID, parsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Comments fetched successfully", page)
}

// Add 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param request body dto.ContentRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentInfo}
// @Router /comments/{videoId} [post]
func (h *CommentHandler) Add(c *gin.Context) {
	videoID, ok := pathID(c, "videoId", service.ErrInvalidVideoID)
	if !ok {
		return
	}

	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}

	comment, err := h.commentService.Add(c.Request.Context(), currentUserID(c), videoID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Comment added successfully", comment)
}

// Update 修改评论
// @Summary 修改评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论ID"
// @Param request body dto.ContentRequest true "评论内容"
// @Success 200 {object} response.Response{data=dto.CommentInfo}
// @Failure 404 {object} response.Response "评论不存在或无权限"
// @Router /comments/c/{commentId} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathID(c, "commentId", service.ErrInvalidCommentID)
	if !ok {
		return
	}

	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), currentUserID(c), commentID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Comment updated successfully", comment)
}

// Delete 删除评论
// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response "评论不存在或无权限"
// @Router /comments/c/{commentId} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c, "commentId", service.ErrInvalidCommentID)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), currentUserID(c), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Comment deleted successfully", gin.H{})
}
