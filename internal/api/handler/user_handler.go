package handler

import (
	"vidverse/internal/api/dto"
	"vidverse/internal/api/response"
	"vidverse/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CurrentUser 当前用户信息
// @Summary 当前用户
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Router /users/current-user [get]
func (h *UserHandler) CurrentUser(c *gin.Context) {
	user, err := h.userService.CurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Current user fetched successfully", user)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "新旧密码"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "旧密码错误"
// @Router /users/change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), currentUserID(c), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password changed successfully", gin.H{})
}

// UpdateAccount 修改昵称和邮箱
// @Summary 修改账户信息
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAccountRequest true "账户信息"
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Failure 409 {object} response.Response "邮箱已被使用"
// @Router /users/update-account [patch]
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}
	user, err := h.userService.UpdateAccount(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Account details updated successfully", user)
}

// UpdateAvatar 更换头像
// @Summary 更换头像
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "头像"
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Router /users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	file, closeFile, err := formFile(c, "avatar", imageLimit())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFile()

	user, err := h.userService.UpdateAvatar(c.Request.Context(), currentUserID(c), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Avatar updated successfully", user)
}

// UpdateCoverImage 更换封面
// @Summary 更换封面
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param coverImage formData file true "封面"
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Router /users/cover-image [patch]
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	file, closeFile, err := formFile(c, "coverImage", imageLimit())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFile()

	user, err := h.userService.UpdateCoverImage(c.Request.Context(), currentUserID(c), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cover image updated successfully", user)
}

// ChannelProfile 频道主页
// @Summary 频道主页
// @Description 订阅数、订阅的频道数，登录时返回当前用户是否已订阅
// @Tags 用户
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.ChannelProfile}
// @Failure 404 {object} response.Response "频道不存在"
// @Router /users/c/{username} [get]
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	profile, err := h.userService.ChannelProfile(c.Request.Context(), c.Param("username"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User channel fetched successfully", profile)
}

// WatchHistory 观看历史
// @Summary 观看历史
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.VideoInfo}
// @Router /users/history [get]
func (h *UserHandler) WatchHistory(c *gin.Context) {
	videos, err := h.userService.WatchHistory(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Watch history fetched successfully", videos)
}

// ClearWatchHistory 清空观看历史
// @Summary 清空观看历史
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/history [delete]
func (h *UserHandler) ClearWatchHistory(c *gin.Context) {
	if err := h.userService.ClearWatchHistory(c.Request.Context(), currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Watch history cleared", []dto.VideoInfo{})
}
