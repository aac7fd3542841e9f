package handler

import (
	"vidverse/internal/api/dto"
	"vidverse/internal/api/response"
	"vidverse/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create 发布动态
// @Summary 发布动态
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ContentRequest true "内容"
// @Success 201 {object} response.Response{data=dto.TweetInfo}
// @Router /tweets [post]
func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}

	tweet, err := h.tweetService.Create(c.Request.Context(), currentUserID(c), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Tweet created successfully", tweet)
}

// ListByUser 用户动态
// @Summary 用户动态列表
// @Tags 动态
// @Produce json
// @Security BearerAuth
// @Param userId path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.Page[dto.TweetInfo]}
// @Router /tweets/user/{userId} [get]
func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId", service.ErrInvalidUserID)
	if !ok {
		return
	}

	page, err := h.tweetService.ListByUser(c.Request.Context(), userID, parsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tweets fetched successfully", page)
}

// Update 修改动态
// @Summary 修改动态
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态ID"
// @Param request body dto.ContentRequest true "内容"
// @Success 200 {object} response.Response{data=dto.TweetInfo}
// @Failure 404 {object} response.Response "动态不存在或无权限"
// @Router /tweets/{tweetId} [patch]
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, ok := pathID(c, "tweetId", service.ErrInvalidTweetID)
	if !ok {
		return
	}

	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}

	tweet, err := h.tweetService.Update(c.Request.Context(), currentUserID(c), tweetID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tweet updated successfully", tweet)
}

// Delete 删除动态
// @Summary 删除动态
// @Tags 动态
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态ID"
// @Success 200 {object} response.Response
// @Router /tweets/{tweetId} [delete]
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, ok := pathID(c, "tweetId", service.ErrInvalidTweetID)
	if !ok {
		return
	}

	if err := h.tweetService.Delete(c.Request.Context(), currentUserID(c), tweetID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tweet deleted successfully", gin.H{})
}
