package service

import (
	"context"

	"vidverse/internal/api/dto"
	"vidverse/internal/metrics"
	"vidverse/internal/model"
	"vidverse/internal/repository"
)

type LikeService struct {
	likeRepo    *repository.LikeRepository
	videoRepo   *repository.VideoRepository
	commentRepo *repository.CommentRepository
	tweetRepo   *repository.TweetRepository
}

func NewLikeService(
	likeRepo *repository.LikeRepository,
	videoRepo *repository.VideoRepository,
	commentRepo *repository.CommentRepository,
	tweetRepo *repository.TweetRepository,
) *LikeService {
	return &LikeService{likeRepo: likeRepo, videoRepo: videoRepo, commentRepo: commentRepo, tweetRepo: tweetRepo}
}

// ToggleVideoLike 返回 true 表示切换后为已点赞；他人未发布的视频视为不存在
func (s *LikeService) ToggleVideoLike(ctx context.Context, userID, videoID int64) (bool, error) {
	visible := func(ctx context.Context, id int64) (bool, error) {
		return s.videoRepo.VisibleTo(ctx, id, userID)
	}
	return s.toggle(ctx, userID, model.LikeTargetVideo, videoID, visible, ErrVideoNotFound)
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID int64) (bool, error) {
	return s.toggle(ctx, userID, model.LikeTargetComment, commentID, s.commentRepo.Exists, ErrCommentNotFound)
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, userID, tweetID int64) (bool, error) {
	return s.toggle(ctx, userID, model.LikeTargetTweet, tweetID, s.tweetRepo.Exists, ErrTweetNotFound)
}

func (s *LikeService) toggle(
	ctx context.Context,
	userID int64,
	target model.LikeTarget,
	targetID int64,
	exists func(context.Context, int64) (bool, error),
	notFound *AppError,
) (bool, error) {
	ok, err := exists(ctx, targetID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, notFound
	}

	liked, err := s.likeRepo.Toggle(ctx, userID, target, targetID)
	if err != nil {
		return false, err
	}
	metrics.ObserveToggle("like_"+string(target), liked)
	return liked, nil
}

// LikedVideos 当前用户点赞过的视频
func (s *LikeService) LikedVideos(ctx context.Context, userID int64) ([]dto.VideoInfo, error) {
	videos, err := s.videoRepo.LikedVideos(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toVideoInfos(videos), nil
}
