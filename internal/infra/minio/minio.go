package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"vidverse/internal/config"
	"vidverse/pkg/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Storage MinIO 媒体存储：上传返回公开 URL，按 URL 删除对象
type Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// New 创建 MinIO 客户端，确保 bucket 存在且可公开读取
func New(cfg *config.MinIOConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.Bucket))
	}

	// 前端直接播放视频、展示图片，需要公开读
	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, cfg.Bucket)
	if err := client.SetBucketPolicy(ctx, cfg.Bucket, policy); err != nil {
		return nil, fmt.Errorf("failed to set public policy for %s: %w", cfg.Bucket, err)
	}

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
	)

	return &Storage{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Bucket 返回媒体 bucket 名称
func (s *Storage) Bucket() string {
	return s.bucket
}

// Upload 上传文件到 folder 下，对象名使用 uuid 避免冲突，返回公开访问 URL
func (s *Storage) Upload(ctx context.Context, folder, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := s.ObjectName(folder, filename)
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}
	return s.URL(objectName), nil
}

// ObjectName 生成 folder/<uuid><ext>
func (s *Storage) ObjectName(folder, filename string) string {
	return path.Join(folder, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}

// URL 返回对象的公开 URL
func (s *Storage) URL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName)
}

// ObjectFromURL 从公开 URL 还原对象名；非本 bucket 的 URL 返回 false
func (s *Storage) ObjectFromURL(url string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", s.baseURL, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// Delete 按 URL 删除对象，外部 URL 直接忽略
func (s *Storage) Delete(ctx context.Context, url string) error {
	objectName, ok := s.ObjectFromURL(url)
	if !ok {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", objectName, err)
	}
	return nil
}

// Download 下载对象到本地文件（worker 探测时长使用）
func (s *Storage) Download(ctx context.Context, objectName, destPath string) error {
	return s.client.FGetObject(ctx, s.bucket, objectName, destPath, minio.GetObjectOptions{})
}
