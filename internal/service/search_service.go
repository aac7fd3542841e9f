package service

import (
	"context"
	"strings"
	"time"

	"vidverse/internal/api/dto"
	"vidverse/internal/repository"
	"vidverse/pkg/logger"

	"go.uber.org/zap"
)

type SearchService struct {
	videoRepo *repository.VideoRepository
	indexer   SearchIndexer
}

func NewSearchService(videoRepo *repository.VideoRepository, indexer SearchIndexer) *SearchService {
	return &SearchService{videoRepo: videoRepo, indexer: indexer}
}

// SearchVideos 搜索视频（ES 优先，失败则降级到 DB）
func (s *SearchService) SearchVideos(ctx context.Context, keyword string, q dto.PageQuery) (*dto.Page[dto.VideoInfo], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrSearchQueryRequired
	}
	page := q.Normalize()

	if s.indexer != nil {
		data, err := s.searchFromIndex(ctx, keyword, page)
		if err == nil {
			return data, nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.String("q", keyword), zap.Error(err))
	}
	return s.searchFromDB(ctx, keyword, page)
}

func (s *SearchService) searchFromIndex(ctx context.Context, keyword string, page dto.PageQuery) (*dto.Page[dto.VideoInfo], error) {
	esCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ids, total, err := s.indexer.SearchVideos(esCtx, keyword, page.Page, page.Limit)
	if err != nil {
		return nil, err
	}

	// 索引可能滞后，以数据库为准过滤掉已删除或已下架的视频
	videos, err := s.videoRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		if videos[i].IsPublished {
			items = append(items, toVideoInfo(&videos[i]))
		}
	}
	return dto.NewPage(items, total, page), nil
}

func (s *SearchService) searchFromDB(ctx context.Context, keyword string, page dto.PageQuery) (*dto.Page[dto.VideoInfo], error) {
	videos, total, err := s.videoRepo.List(ctx, repository.VideoFilter{
		Query:         keyword,
		PublishedOnly: true,
		Offset:        page.Offset(),
		Limit:         page.Limit,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPage(toVideoInfos(videos), total, page), nil
}

const reindexBatchSize = 500

// Reindex 将数据库中的视频全量同步到索引，返回成功与失败条数
func (s *SearchService) Reindex(ctx context.Context, bulk BulkIndexer) (int, int, error) {
	var (
		afterID         int64
		success, failed int
	)
	for {
		videos, err := s.videoRepo.ListAfter(ctx, afterID, reindexBatchSize)
		if err != nil {
			return success, failed, err
		}
		if len(videos) == 0 {
			break
		}

		ok, bad, err := bulk.BulkIndexVideos(ctx, videos)
		if err != nil {
			return success, failed + len(videos), err
		}
		success += ok
		failed += bad
		afterID = videos[len(videos)-1].ID
	}

	logger.Info("Search index synced", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
