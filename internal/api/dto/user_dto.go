package dto

import "time"

// RegisterRequest 注册请求（multipart/form-data，头像与封面为文件字段）
type RegisterRequest struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	FullName string `form:"fullName"`
	Password string `form:"password"`
}

// LoginRequest 登录请求，用户名或邮箱二选一
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest 刷新请求，Cookie 中没有时从 body 读取
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest 修改密码
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateAccountRequest 修改账户信息
type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// UserInfo 用户公开信息（不含密码）
type UserInfo struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage *string   `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TokenPair access + refresh token
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginData 登录成功返回
type LoginData struct {
	User *UserInfo `json:"user"`
	TokenPair
}

// ChannelProfile 频道主页
type ChannelProfile struct {
	ID                       int64   `json:"id"`
	Username                 string  `json:"username"`
	FullName                 string  `json:"fullName"`
	Email                    string  `json:"email"`
	Avatar                   string  `json:"avatar"`
	CoverImage               *string `json:"coverImage"`
	SubscribersCount         int64   `json:"subscribersCount"`
	ChannelSubscriptionCount int64   `json:"channelSubscriptionCount"`
	IsSubscribed             bool    `json:"isSubscribed"`
}

// ChannelBrief 订阅者/订阅频道列表项
type ChannelBrief struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}
