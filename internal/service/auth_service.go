package service

import (
	"context"
	"strings"
	"time"

	"vidverse/internal/api/dto"
	"vidverse/internal/model"
	"vidverse/internal/repository"
	"vidverse/pkg/logger"
	"vidverse/pkg/utils"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	storage   MediaStorage
	blacklist TokenBlacklist
}

// NewAuthService blacklist 可为 nil，此时注销只清除 refresh token
func NewAuthService(userRepo *repository.UserRepository, storage MediaStorage, blacklist TokenBlacklist) *AuthService {
	return &AuthService{userRepo: userRepo, storage: storage, blacklist: blacklist}
}

// Register 用户注册：校验字段、唯一性，上传头像（必填）与封面（可选）
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, avatar, cover *File) (*dto.UserInfo, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)
	if username == "" || email == "" || fullName == "" || strings.TrimSpace(req.Password) == "" {
		return nil, ErrAllFieldsRequired
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	if avatar == nil {
		return nil, ErrAvatarRequired
	}

	avatarURL, err := s.storage.Upload(ctx, "avatars", avatar.Name, avatar.Body, avatar.Size, avatar.ContentType)
	if err != nil {
		logger.Error("Upload avatar failed", zap.Error(err))
		return nil, ErrUploadFailed
	}
	uploaded := []string{avatarURL}

	var coverURL *string
	if cover != nil {
		url, err := s.storage.Upload(ctx, "covers", cover.Name, cover.Body, cover.Size, cover.ContentType)
		if err != nil {
			logger.Error("Upload cover image failed", zap.Error(err))
			s.discard(ctx, uploaded...)
			return nil, ErrUploadFailed
		}
		coverURL = &url
		uploaded = append(uploaded, url)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.discard(ctx, uploaded...)
		return nil, err
	}

	user := &model.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   hashed,
		Avatar:     avatarURL,
		CoverImage: coverURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.discard(ctx, uploaded...)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return toUserInfo(user), nil
}

// Login 用户名或邮箱 + 密码登录，签发 access/refresh token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginData, error) {
	if strings.TrimSpace(req.Username) == "" && strings.TrimSpace(req.Email) == "" {
		return nil, ErrUsernameOrEmailRequired
	}

	user, err := s.userRepo.GetByUsernameOrEmail(ctx, strings.TrimSpace(req.Username), strings.TrimSpace(req.Email))
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.LoginData{User: toUserInfo(user), TokenPair: *pair}, nil
}

// Logout 清除 refresh token，并吊销当前 access token
func (s *AuthService) Logout(ctx context.Context, userID int64, jti string, exp time.Time) error {
	if err := s.userRepo.SetRefreshTokenHash(ctx, userID, nil); err != nil {
		return err
	}
	if s.blacklist != nil && jti != "" {
		if err := s.blacklist.Revoke(ctx, jti, exp); err != nil {
			// refresh token 已失效，access token 最多存活到自然过期
			logger.Warn("Revoke access token failed", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return nil
}

// RefreshAccessToken 校验 refresh token 与库中摘要一致后轮换
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrUnauthorized
	}

	claims, err := utils.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, notFoundOr(err, ErrInvalidRefreshToken)
	}

	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != utils.HashToken(refreshToken) {
		return nil, ErrRefreshTokenUsed
	}

	return s.issueTokens(ctx, user.ID)
}

// IsRevoked 中间件校验 access token 是否已注销
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s.blacklist == nil || jti == "" {
		return false, nil
	}
	return s.blacklist.IsRevoked(ctx, jti)
}

func (s *AuthService) issueTokens(ctx context.Context, userID int64) (*dto.TokenPair, error) {
	access, err := utils.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	hash := utils.HashToken(refresh)
	if err := s.userRepo.SetRefreshTokenHash(ctx, userID, &hash); err != nil {
		return nil, err
	}
	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// discard 回滚已上传的文件，失败只记日志
func (s *AuthService) discard(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if err := s.storage.Delete(ctx, url); err != nil {
			logger.Warn("Delete orphan media failed", zap.String("url", url), zap.Error(err))
		}
	}
}
