package service

import (
	"context"

	"vidverse/internal/api/dto"
	"vidverse/internal/metrics"
	"vidverse/internal/repository"
)

type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	userRepo *repository.UserRepository
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// ToggleSubscription 订阅/取消订阅频道，返回 true 表示切换后为已订阅。
// 不能订阅自己，无论当前状态
func (s *SubscriptionService) ToggleSubscription(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	if err := s.ensureUser(ctx, channelID, ErrChannelNotFound); err != nil {
		return false, err
	}
	if subscriberID == channelID {
		return false, ErrSelfSubscription
	}

	subscribed, err := s.subRepo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return false, err
	}
	metrics.ObserveToggle("subscription", subscribed)
	return subscribed, nil
}

// Subscribers 频道的订阅者
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID int64) ([]dto.ChannelBrief, error) {
	if err := s.ensureUser(ctx, channelID, ErrChannelNotFound); err != nil {
		return nil, err
	}
	users, err := s.subRepo.Subscribers(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return toChannelBriefs(users), nil
}

// SubscribedChannels 用户订阅的频道
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID int64) ([]dto.ChannelBrief, error) {
	if err := s.ensureUser(ctx, subscriberID, ErrUserNotFound); err != nil {
		return nil, err
	}
	users, err := s.subRepo.SubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	return toChannelBriefs(users), nil
}

func (s *SubscriptionService) ensureUser(ctx context.Context, id int64, notFound *AppError) error {
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound
	}
	return nil
}
