package repository

import (
	"context"
	"strings"
	"time"

	"vidverse/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ChannelProfileRow 频道主页聚合结果
type ChannelProfileRow struct {
	ID                       int64
	Username                 string
	FullName                 string
	Email                    string
	Avatar                   string
	CoverImage               *string
	SubscribersCount         int64
	ChannelSubscriptionCount int64
	IsSubscribedCount        int64
}

// GetByID 根据 ID 查询用户
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrap(err, "get user by id")
	}
	return &user, nil
}

// GetByUsernameOrEmail 用户名或邮箱任一匹配即返回（登录使用）
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", strings.ToLower(username), strings.ToLower(email)).
		First(&user).Error
	if err != nil {
		return nil, wrap(err, "get user by username or email")
	}
	return &user, nil
}

// ExistsByUsernameOrEmail 注册前的唯一性检查
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", strings.ToLower(username), strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, wrap(err, "check user exists")
	}
	return count > 0, nil
}

// Exists 检查用户是否存在
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrap(err, "check user exists")
	}
	return count > 0, nil
}

// Create 创建用户
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return wrap(r.db.WithContext(ctx).Create(user).Error, "create user")
}

// Update 更新用户字段，返回更新后的用户
func (r *UserRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.User, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, wrap(result.Error, "update user")
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// SetRefreshTokenHash 保存或清除 refresh token 摘要
func (r *UserRepository) SetRefreshTokenHash(ctx context.Context, id int64, hash *string) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("refresh_token_hash", hash).Error
	return wrap(err, "set refresh token hash")
}

// ChannelProfile 按用户名聚合频道信息，viewerID 为 0 表示匿名访问。
// 用户不存在时返回空切片
func (r *UserRepository) ChannelProfile(ctx context.Context, username string, viewerID int64) ([]ChannelProfileRow, error) {
	var rows []ChannelProfileRow
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select(`users.id, users.username, users.full_name, users.email, users.avatar, users.cover_image,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = users.id) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = users.id) AS channel_subscription_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = users.id AND s.subscriber_id = ?) AS is_subscribed_count`, viewerID).
		Where("users.username = ?", strings.ToLower(strings.TrimSpace(username))).
		Scan(&rows).Error
	if err != nil {
		return nil, wrap(err, "channel profile")
	}
	return rows, nil
}

// AddWatchHistory 追加观看记录，已看过则保持原有位置
func (r *UserRepository) AddWatchHistory(ctx context.Context, userID, videoID int64) error {
	entry := &model.WatchHistory{UserID: userID, VideoID: videoID, CreatedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
	return wrap(err, "add watch history")
}

// ClearWatchHistory 清空观看记录
func (r *UserRepository) ClearWatchHistory(ctx context.Context, userID int64) error {
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.WatchHistory{}).Error
	return wrap(err, "clear watch history")
}

// WatchHistory 按观看顺序返回视频，带上传者信息；他人已下架的视频不返回
func (r *UserRepository) WatchHistory(ctx context.Context, userID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Select("videos.*").
		Joins("JOIN watch_histories wh ON wh.video_id = videos.id").
		Where("wh.user_id = ?", userID).
		Where("(videos.is_published = ? OR videos.owner_id = ?)", true, userID).
		Order("wh.id ASC").
		Preload("Owner").
		Find(&videos).Error
	if err != nil {
		return nil, wrap(err, "watch history")
	}
	return videos, nil
}
