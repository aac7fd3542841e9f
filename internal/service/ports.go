package service

import (
	"context"
	"io"
	"time"

	infraKafka "vidverse/internal/infra/kafka"
	"vidverse/internal/model"
)

// File 上传文件
type File struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

// MediaStorage 媒体存储（MinIO）
type MediaStorage interface {
	Upload(ctx context.Context, folder, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
	Bucket() string
	ObjectFromURL(url string) (string, bool)
}

// EventPublisher 视频事件发布（Kafka）
type EventPublisher interface {
	PublishVideoUploaded(ctx context.Context, evt *infraKafka.VideoUploaded) error
}

// SearchIndexer 视频搜索索引（Elasticsearch）
type SearchIndexer interface {
	IndexVideo(ctx context.Context, v *model.Video) error
	DeleteVideo(ctx context.Context, videoID int64) error
	SearchVideos(ctx context.Context, keyword string, page, limit int) ([]int64, int64, error)
}

// BulkIndexer 批量写入索引，启动时全量同步使用
type BulkIndexer interface {
	BulkIndexVideos(ctx context.Context, videos []model.Video) (success, failed int, err error)
}

// TokenBlacklist access token 吊销表（Redis）
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// StatsCache 频道统计缓存（Redis）
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}
