package service

import (
	"context"
	"strings"

	"vidverse/internal/api/dto"
	"vidverse/internal/repository"
	"vidverse/pkg/logger"
	"vidverse/pkg/utils"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repository.UserRepository
	storage  MediaStorage
}

func NewUserService(userRepo *repository.UserRepository, storage MediaStorage) *UserService {
	return &UserService{userRepo: userRepo, storage: storage}
}

// CurrentUser 当前登录用户信息
func (s *UserService) CurrentUser(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	return toUserInfo(user), nil
}

// ChangePassword 校验旧密码后修改
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	if req.OldPassword == "" || strings.TrimSpace(req.NewPassword) == "" {
		return ErrAllFieldsRequired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, ErrUserNotFound)
	}
	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return ErrInvalidOldPassword
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.userRepo.Update(ctx, userID, map[string]interface{}{"password": hashed})
	return notFoundOr(err, ErrUserNotFound)
}

// UpdateAccount 修改昵称和邮箱
func (s *UserService) UpdateAccount(ctx context.Context, userID int64, req *dto.UpdateAccountRequest) (*dto.UserInfo, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || email == "" {
		return nil, ErrAllFieldsRequired
	}

	user, err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		"full_name": fullName,
		"email":     email,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	return toUserInfo(user), nil
}

// UpdateAvatar 上传新头像，写库成功后删除旧头像
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, file *File) (*dto.UserInfo, error) {
	if file == nil {
		return nil, ErrAvatarRequired
	}
	return s.replaceImage(ctx, userID, "avatars", "avatar", file)
}

// UpdateCoverImage 上传新封面，写库成功后删除旧封面
func (s *UserService) UpdateCoverImage(ctx context.Context, userID int64, file *File) (*dto.UserInfo, error) {
	if file == nil {
		return nil, ErrCoverImageRequired
	}
	return s.replaceImage(ctx, userID, "covers", "cover_image", file)
}

func (s *UserService) replaceImage(ctx context.Context, userID int64, folder, column string, file *File) (*dto.UserInfo, error) {
	before, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}

	url, err := s.storage.Upload(ctx, folder, file.Name, file.Body, file.Size, file.ContentType)
	if err != nil {
		logger.Error("Upload image failed", zap.String("folder", folder), zap.Error(err))
		return nil, ErrUploadFailed
	}

	after, err := s.userRepo.Update(ctx, userID, map[string]interface{}{column: url})
	if err != nil {
		s.deleteMedia(ctx, url)
		return nil, notFoundOr(err, ErrUserNotFound)
	}

	old := before.Avatar
	if column == "cover_image" {
		old = ""
		if before.CoverImage != nil {
			old = *before.CoverImage
		}
	}
	if old != "" {
		s.deleteMedia(ctx, old)
	}
	return toUserInfo(after), nil
}

func (s *UserService) deleteMedia(ctx context.Context, url string) {
	if err := s.storage.Delete(ctx, url); err != nil {
		logger.Warn("Delete media failed", zap.String("url", url), zap.Error(err))
	}
}

// ChannelProfile 频道主页聚合；用户名不存在返回 ErrChannelNotFound
func (s *UserService) ChannelProfile(ctx context.Context, username string, viewerID int64) (*dto.ChannelProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameMissing
	}

	rows, err := s.userRepo.ChannelProfile(ctx, username, viewerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrChannelNotFound
	}

	r := rows[0]
	return &dto.ChannelProfile{
		ID:                       r.ID,
		Username:                 r.Username,
		FullName:                 r.FullName,
		Email:                    r.Email,
		Avatar:                   r.Avatar,
		CoverImage:               r.CoverImage,
		SubscribersCount:         r.SubscribersCount,
		ChannelSubscriptionCount: r.ChannelSubscriptionCount,
		IsSubscribed:             r.IsSubscribedCount > 0,
	}, nil
}

// WatchHistory 观看历史，按观看顺序
func (s *UserService) WatchHistory(ctx context.Context, userID int64) ([]dto.VideoInfo, error) {
	videos, err := s.userRepo.WatchHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toVideoInfos(videos), nil
}

// ClearWatchHistory 清空观看历史
func (s *UserService) ClearWatchHistory(ctx context.Context, userID int64) error {
	return s.userRepo.ClearWatchHistory(ctx, userID)
}
