package service

import (
	"context"
	"strings"

	"vidverse/internal/api/dto"
	"vidverse/internal/model"
	"vidverse/internal/repository"
)

type TweetService struct {
	tweetRepo *repository.TweetRepository
	userRepo  *repository.UserRepository
}

func NewTweetService(tweetRepo *repository.TweetRepository, userRepo *repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (s *TweetService) Create(ctx context.Context, userID int64, content string) (*dto.TweetInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	tweet := &model.Tweet{OwnerID: userID, Content: content}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	info := toTweetInfo(tweet)
	return &info, nil
}

// ListByUser 用户动态分页
func (s *TweetService) ListByUser(ctx context.Context, userID int64, q dto.PageQuery) (*dto.Page[dto.TweetInfo], error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	page := q.Normalize()
	tweets, total, err := s.tweetRepo.ListByOwner(ctx, userID, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TweetInfo, 0, len(tweets))
	for i := range tweets {
		items = append(items, toTweetInfo(&tweets[i]))
	}
	return dto.NewPage(items, total, page), nil
}

func (s *TweetService) Update(ctx context.Context, userID, tweetID int64, content string) (*dto.TweetInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	tweet, err := s.tweetRepo.UpdateOwned(ctx, tweetID, userID, content)
	if err != nil {
		return nil, notFoundOr(err, ErrTweetNotFound)
	}
	info := toTweetInfo(tweet)
	return &info, nil
}

func (s *TweetService) Delete(ctx context.Context, userID, tweetID int64) error {
	return notFoundOr(s.tweetRepo.DeleteOwned(ctx, tweetID, userID), ErrTweetNotFound)
}
