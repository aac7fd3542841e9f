package middleware

import (
	"context"
	"strings"
	"time"

	"vidverse/internal/api/response"
	"vidverse/internal/service"
	"vidverse/pkg/logger"
	"vidverse/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextKeyUserID   = "currentUserID"
	ContextKeyTokenID  = "currentTokenID"
	ContextKeyTokenExp = "currentTokenExp"

	// AccessTokenCookie 登录时写入的 access token cookie 名
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie 登录时写入的 refresh token cookie 名
	RefreshTokenCookie = "refreshToken"
)

// RevocationChecker 查询 access token 是否已注销
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RequireAuth 要求携带有效且未注销的 access token（Cookie 或 Bearer）
func RequireAuth(checker RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Abort(c, service.ErrUnauthorized)
			return
		}

		claims, err := utils.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, service.ErrInvalidAccessToken)
			return
		}

		revoked, err := checker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// Redis 故障时放行，token 仍受过期时间约束
			logger.Warn("Check token revocation failed", zap.Error(err))
		}
		if revoked {
			response.Abort(c, service.ErrInvalidAccessToken)
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth 公开接口使用：token 有效时识别当前用户，否则按匿名处理
func OptionalAuth(checker RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := utils.ParseAccessToken(token)
		if err != nil {
			c.Next()
			return
		}
		if revoked, _ := checker.IsRevoked(c.Request.Context(), claims.ID); revoked {
			c.Next()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

func setIdentity(c *gin.Context, claims *utils.Claims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyTokenID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(ContextKeyTokenExp, claims.ExpiresAt.Time)
	}
}

// GetCurrentUserID 从 Gin Context 中获取当前登录用户 ID
func GetCurrentUserID(c *gin.Context) (int64, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := val.(int64)
	return userID, ok
}

// GetCurrentToken 当前 access token 的 jti 与过期时间（注销时使用）
func GetCurrentToken(c *gin.Context) (string, time.Time) {
	jti := c.GetString(ContextKeyTokenID)
	exp, _ := c.Get(ContextKeyTokenExp)
	t, _ := exp.(time.Time)
	return jti, t
}

// extractToken Cookie 优先，其次 Authorization: Bearer
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
