package handler

import (
	"vidverse/internal/api/response"
	"vidverse/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle 订阅/取消订阅
// @Summary 切换订阅
// @Description 不能订阅自己
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channelId path int true "频道（用户）ID"
// @Success 200 {object} response.Response "isSubscribed 为切换后的状态"
// @Failure 404 {object} response.Response "频道不存在"
// @Failure 409 {object} response.Response "订阅自己"
// @Router /subscriptions/c/{channelId} [post]
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, ok := pathID(c, "channelId", service.ErrInvalidChannelID)
	if !ok {
		return
	}

	subscribed, err := h.subscriptionService.ToggleSubscription(c.Request.Context(), currentUserID(c), channelID)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	response.OK(c, message, gin.H{"isSubscribed": subscribed})
}

// Subscribers 频道的订阅者
// @Summary 订阅者列表
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channelId path int true "频道（用户）ID"
// @Success 200 {object} response.Response{data=[]dto.ChannelBrief}
// @Router /subscriptions/c/{channelId} [get]
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, ok := pathID(c, "channelId", service.ErrInvalidChannelID)
	if !ok {
		return
	}

	users, err := h.subscriptionService.Subscribers(c.Request.Context(), channelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Subscribers fetched successfully", users)
}

// SubscribedChannels 用户订阅的频道
// @Summary 订阅的频道
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param subscriberId path int true "用户ID"
// @Success 200 {object} response.Response{data=[]dto.ChannelBrief}
// @Router /subscriptions/u/{subscriberId} [get]
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	subscriberID, ok := pathID(c, "subscriberId", service.ErrInvalidUserID)
	if !ok {
		return
	}

	channels, err := h.subscriptionService.SubscribedChannels(c.Request.Context(), subscriberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Subscribed channels fetched successfully", channels)
}
