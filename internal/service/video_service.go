package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"vidverse/internal/api/dto"
	infraKafka "vidverse/internal/infra/kafka"
	"vidverse/internal/metrics"
	"vidverse/internal/model"
	"vidverse/internal/repository"
	"vidverse/pkg/logger"

	"go.uber.org/zap"
)

type VideoService struct {
	videoRepo *repository.VideoRepository
	userRepo  *repository.UserRepository
	likeRepo  *repository.LikeRepository
	storage   MediaStorage
	publisher EventPublisher
	indexer   SearchIndexer
}

// NewVideoService publisher、indexer 可为 nil：不发送探测任务 / 不同步搜索索引
func NewVideoService(
	videoRepo *repository.VideoRepository,
	userRepo *repository.UserRepository,
	likeRepo *repository.LikeRepository,
	storage MediaStorage,
	publisher EventPublisher,
	indexer SearchIndexer,
) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		likeRepo:  likeRepo,
		storage:   storage,
		publisher: publisher,
		indexer:   indexer,
	}
}

// Publish 上传视频和缩略图并创建记录，随后投递时长探测任务
func (s *VideoService) Publish(ctx context.Context, ownerID int64, req *dto.VideoPublishRequest, videoFile, thumbnail *File) (*dto.VideoInfo, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, ErrTitleDescRequired
	}
	if videoFile == nil {
		return nil, ErrVideoFileRequired
	}
	if thumbnail == nil {
		return nil, ErrThumbnailRequired
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}

	videoURL, err := s.storage.Upload(ctx, "videos", videoFile.Name, videoFile.Body, videoFile.Size, videoFile.ContentType)
	if err != nil {
		logger.Error("Upload video file failed", zap.Int64("owner_id", ownerID), zap.Error(err))
		return nil, ErrUploadFailed
	}
	thumbURL, err := s.storage.Upload(ctx, "thumbnails", thumbnail.Name, thumbnail.Body, thumbnail.Size, thumbnail.ContentType)
	if err != nil {
		logger.Error("Upload thumbnail failed", zap.Int64("owner_id", ownerID), zap.Error(err))
		s.deleteMedia(ctx, videoURL)
		return nil, ErrUploadFailed
	}

	video := &model.Video{
		OwnerID:     ownerID,
		OwnerName:   owner.Username,
		Title:       title,
		Description: description,
		Thumbnail:   thumbURL,
		VideoFile:   videoURL,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.deleteMedia(ctx, videoURL, thumbURL)
		return nil, err
	}

	s.requestProbe(ctx, video)
	s.syncIndex(ctx, video)

	logger.Info("Video published", zap.Int64("video_id", video.ID), zap.Int64("owner_id", ownerID))
	info := toVideoInfo(video)
	info.Owner = toOwnerBrief(owner)
	return &info, nil
}

// requestProbe Kafka 不可用时视频照常发布，时长保持 0
func (s *VideoService) requestProbe(ctx context.Context, v *model.Video) {
	if s.publisher == nil {
		return
	}
	objectName, ok := s.storage.ObjectFromURL(v.VideoFile)
	if !ok {
		return
	}
	evt := &infraKafka.VideoUploaded{VideoID: v.ID, Bucket: s.storage.Bucket(), ObjectName: objectName}

	sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishVideoUploaded(sendCtx, evt); err != nil {
		logger.Warn("Send probe task failed", zap.Int64("video_id", v.ID), zap.Error(err))
	}
}

// Get 视频详情：未发布视频仅上传者可见；播放量 +1，登录用户记入观看历史
func (s *VideoService) Get(ctx context.Context, videoID, viewerID int64) (*dto.VideoDetail, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, notFoundOr(err, ErrVideoNotFound)
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}

	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		return nil, err
	}
	video.Views++

	if viewerID > 0 {
		if err := s.userRepo.AddWatchHistory(ctx, viewerID, videoID); err != nil {
			logger.Warn("Add watch history failed", zap.Int64("user_id", viewerID), zap.Error(err))
		}
	}

	likes, err := s.likeRepo.CountByTarget(ctx, model.LikeTargetVideo, videoID)
	if err != nil {
		return nil, err
	}
	var isLiked bool
	if viewerID > 0 {
		n, err := s.likeRepo.Count(ctx, viewerID, model.LikeTargetVideo, videoID)
		if err != nil {
			return nil, err
		}
		isLiked = n > 0
	}

	detail := &dto.VideoDetail{VideoInfo: toVideoInfo(video), LikesCount: likes, IsLiked: isLiked}
	if owner, err := s.userRepo.GetByID(ctx, video.OwnerID); err == nil {
		detail.Owner = toOwnerBrief(owner)
	}
	return detail, nil
}

// Update 修改标题/描述/缩略图，仅上传者可改
func (s *VideoService) Update(ctx context.Context, ownerID, videoID int64, req *dto.VideoUpdateRequest, thumbnail *File) (*dto.VideoInfo, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		if t := strings.TrimSpace(*req.Title); t != "" {
			updates["title"] = t
		}
	}
	if req.Description != nil {
		if d := strings.TrimSpace(*req.Description); d != "" {
			updates["description"] = d
		}
	}
	if len(updates) == 0 && thumbnail == nil {
		return nil, ErrNoFieldsToUpdate
	}

	before, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, notFoundOr(err, ErrVideoNotFound)
	}

	var newThumb string
	if thumbnail != nil {
		newThumb, err = s.storage.Upload(ctx, "thumbnails", thumbnail.Name, thumbnail.Body, thumbnail.Size, thumbnail.ContentType)
		if err != nil {
			logger.Error("Upload thumbnail failed", zap.Int64("video_id", videoID), zap.Error(err))
			return nil, ErrUploadFailed
		}
		updates["thumbnail"] = newThumb
	}

	video, err := s.videoRepo.UpdateOwned(ctx, videoID, ownerID, updates)
	if err != nil {
		if newThumb != "" {
			s.deleteMedia(ctx, newThumb)
		}
		return nil, notFoundOr(err, ErrVideoNotFound)
	}
	if newThumb != "" && before.Thumbnail != "" {
		s.deleteMedia(ctx, before.Thumbnail)
	}

	s.syncIndex(ctx, video)
	info := toVideoInfo(video)
	return &info, nil
}

// Delete 删除视频及其关联数据，之后清理媒体文件和搜索索引
func (s *VideoService) Delete(ctx context.Context, ownerID, videoID int64) error {
	video, err := s.videoRepo.DeleteOwned(ctx, videoID, ownerID)
	if err != nil {
		return notFoundOr(err, ErrVideoNotFound)
	}

	s.deleteMedia(ctx, video.VideoFile, video.Thumbnail)
	if s.indexer != nil {
		if err := s.indexer.DeleteVideo(ctx, videoID); err != nil {
			logger.Warn("Delete video from index failed", zap.Int64("video_id", videoID), zap.Error(err))
		}
	}

	logger.Info("Video deleted", zap.Int64("video_id", videoID), zap.Int64("owner_id", ownerID))
	return nil
}

// TogglePublishStatus 切换发布状态，仅上传者可操作
func (s *VideoService) TogglePublishStatus(ctx context.Context, ownerID, videoID int64) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.TogglePublishOwned(ctx, videoID, ownerID)
	if err != nil {
		return nil, notFoundOr(err, ErrVideoNotFound)
	}
	s.syncIndex(ctx, video)
	info := toVideoInfo(video)
	return &info, nil
}

// List 已发布视频分页，可按关键字和上传者筛选
func (s *VideoService) List(ctx context.Context, q *dto.VideoListQuery) (*dto.Page[dto.VideoInfo], error) {
	page := q.PageQuery.Normalize()

	if q.UserID != nil {
		exists, err := s.userRepo.Exists(ctx, *q.UserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrUserNotFound
		}
	}

	videos, total, err := s.videoRepo.List(ctx, repository.VideoFilter{
		Query:         q.Query,
		OwnerID:       q.UserID,
		PublishedOnly: true,
		Offset:        page.Offset(),
		Limit:         page.Limit,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPage(toVideoInfos(videos), total, page), nil
}

// HandleVideoProbed 消费 worker 回报的时长
func (s *VideoService) HandleVideoProbed(ctx context.Context, evt *infraKafka.VideoProbed) error {
	if evt.Error != "" {
		metrics.ProbeResults.WithLabelValues("failed").Inc()
		logger.Warn("Video probe failed", zap.Int64("video_id", evt.VideoID), zap.String("error", evt.Error))
		return nil
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(evt.Duration), 64)
	if err != nil || seconds < 0 {
		metrics.ProbeResults.WithLabelValues("failed").Inc()
		logger.Warn("Invalid probed duration", zap.Int64("video_id", evt.VideoID), zap.String("duration", evt.Duration))
		return nil
	}

	video, err := s.videoRepo.SetDuration(ctx, evt.VideoID, seconds)
	if err != nil {
		if isNotFound(err) {
			// 探测期间视频已被删除
			logger.Info("Probed video no longer exists", zap.Int64("video_id", evt.VideoID))
			return nil
		}
		return err
	}

	metrics.ProbeResults.WithLabelValues("ok").Inc()
	s.syncIndex(ctx, video)
	logger.Info("Video duration updated", zap.Int64("video_id", evt.VideoID), zap.Float64("duration", seconds))
	return nil
}

func (s *VideoService) syncIndex(ctx context.Context, v *model.Video) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexVideo(ctx, v); err != nil {
		logger.Warn("Sync video to index failed", zap.Int64("video_id", v.ID), zap.Error(err))
	}
}

func (s *VideoService) deleteMedia(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.storage.Delete(ctx, url); err != nil {
			logger.Warn("Delete media failed", zap.String("url", url), zap.Error(err))
		}
	}
}
