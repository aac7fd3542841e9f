package handler

import (
	"vidverse/internal/api/dto"
	"vidverse/internal/api/middleware"
	"vidverse/internal/api/response"
	"vidverse/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户，头像必填，封面可选
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "用户名"
// @Param email formData string true "邮箱"
// @Param fullName formData string true "昵称"
// @Param password formData string true "密码"
// @Param avatar formData file true "头像"
// @Param coverImage formData file false "封面"
// @Success 201 {object} response.Response{data=dto.UserInfo} "注册成功"
// @Failure 400 {object} response.Response "参数无效"
// @Failure 409 {object} response.Response "用户名或邮箱已存在"
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}

	avatar, closeAvatar, err := formFile(c, "avatar", imageLimit())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeAvatar()

	cover, closeCover, err := formFile(c, "coverImage", imageLimit())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeCover()

	user, err := h.authService.Register(c.Request.Context(), &req, avatar, cover)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "User registered successfully", user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户名或邮箱登录，token 同时写入 cookie 和响应体
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.LoginData} "登录成功"
// @Failure 401 {object} response.Response "密码错误"
// @Failure 404 {object} response.Response "用户不存在"
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrInvalidBody)
		return
	}

	data, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	setAuthCookies(c, &data.TokenPair)
	response.OK(c, "User logged in successfully", data)
}

// Logout 用户登出
// @Summary 用户登出
// @Description 清除 refresh token 并吊销当前 access token
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "登出成功"
// @Failure 401 {object} response.Response "未授权"
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp := middleware.GetCurrentToken(c)
	if err := h.authService.Logout(c.Request.Context(), currentUserID(c), jti, exp); err != nil {
		response.Error(c, err)
		return
	}

	clearAuthCookies(c)
	response.OK(c, "User logged out", gin.H{})
}

// RefreshToken 刷新 access token
// @Summary 刷新 token
// @Description refresh token 取自 cookie 或请求体，成功后轮换
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "refresh token"
// @Success 200 {object} response.Response{data=dto.TokenPair} "刷新成功"
// @Failure 401 {object} response.Response "refresh token 无效或已使用"
// @Router /users/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshTokenCookie)
	if token == "" {
		var req dto.RefreshTokenRequest
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}

	pair, err := h.authService.RefreshAccessToken(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	setAuthCookies(c, pair)
	response.OK(c, "Access token refreshed", pair)
}
