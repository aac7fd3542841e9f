package repository

import (
	"context"

	"vidverse/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Toggle 切换订阅，返回 true 表示切换后为已订阅
func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	row := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	return toggle(ctx, r.db, row, "subscriber_id = ? AND channel_id = ?", subscriberID, channelID)
}

// Count 统计订阅关系行数
func (r *SubscriptionRepository) Count(ctx context.Context, subscriberID, channelID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count, wrap(err, "count subscriptions")
}

// Subscribers 频道的订阅者，最近订阅在前
func (r *SubscriptionRepository) Subscribers(ctx context.Context, channelID int64) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.*").
		Joins("JOIN subscriptions s ON s.subscriber_id = users.id").
		Where("s.channel_id = ?", channelID).
		Order("s.id DESC").
		Find(&users).Error
	if err != nil {
		return nil, wrap(err, "list subscribers")
	}
	return users, nil
}

// SubscribedChannels 用户订阅的频道，最近订阅在前
func (r *SubscriptionRepository) SubscribedChannels(ctx context.Context, subscriberID int64) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.*").
		Joins("JOIN subscriptions s ON s.channel_id = users.id").
		Where("s.subscriber_id = ?", subscriberID).
		Order("s.id DESC").
		Find(&users).Error
	if err != nil {
		return nil, wrap(err, "list subscribed channels")
	}
	return users, nil
}
