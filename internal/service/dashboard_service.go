package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidverse/internal/api/dto"
	"vidverse/internal/repository"
	"vidverse/pkg/logger"

	"go.uber.org/zap"
)

type DashboardService struct {
	videoRepo *repository.VideoRepository
	cache     StatsCache
	ttl       time.Duration
}

// NewDashboardService cache 为 nil 或 ttl <= 0 时不缓存
func NewDashboardService(videoRepo *repository.VideoRepository, cache StatsCache, ttl time.Duration) *DashboardService {
	return &DashboardService{videoRepo: videoRepo, cache: cache, ttl: ttl}
}

func statsKey(userID int64) string {
	return fmt.Sprintf("vidverse:stats:channel:%d", userID)
}

// ChannelStats 频道统计，短时间缓存，过期前可能略有滞后
func (s *DashboardService) ChannelStats(ctx context.Context, userID int64) (*dto.ChannelStats, error) {
	useCache := s.cache != nil && s.ttl > 0

	if useCache {
		if raw, ok, err := s.cache.Get(ctx, statsKey(userID)); err != nil {
			logger.Warn("Read stats cache failed", zap.Int64("user_id", userID), zap.Error(err))
		} else if ok {
			var cached dto.ChannelStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	st, err := s.videoRepo.ChannelStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := &dto.ChannelStats{
		TotalVideos:      st.TotalVideos,
		TotalViews:       st.TotalViews,
		TotalSubscribers: st.TotalSubscribers,
		TotalLikes:       st.TotalLikes,
	}

	if useCache {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsKey(userID), raw, s.ttl); err != nil {
				logger.Warn("Write stats cache failed", zap.Int64("user_id", userID), zap.Error(err))
			}
		}
	}
	return stats, nil
}

// ChannelVideos 频道全部视频（含未发布），最新在前
func (s *DashboardService) ChannelVideos(ctx context.Context, userID int64, q dto.PageQuery) (*dto.Page[dto.VideoInfo], error) {
	page := q.Normalize()
	videos, total, err := s.videoRepo.List(ctx, repository.VideoFilter{
		OwnerID: &userID,
		Offset:  page.Offset(),
		Limit:   page.Limit,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPage(toVideoInfos(videos), total, page), nil
}
