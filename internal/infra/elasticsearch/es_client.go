package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vidverse/internal/config"
	"vidverse/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// Client 视频搜索索引客户端
type Client struct {
	es    *elasticsearch.Client
	index string
}

// New 创建 Elasticsearch 客户端并 Ping，返回绑定视频索引的 Client
func New(cfg *config.ElasticsearchConfig) (*Client, error) {
	hosts := make([]string, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !strings.HasPrefix(h, "http") {
			h = "http://" + h
		}
		hosts = append(hosts, h)
	}
	if len(hosts) == 0 {
		return nil, fmt.Errorf("elasticsearch hosts is empty")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     hosts,
		RetryOnStatus: []int{502, 503, 504},
		MaxRetries:    3,
		RetryBackoff:  func(i int) time.Duration { return time.Duration(i) * time.Second },
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return nil, fmt.Errorf("elasticsearch ping failed: %s", resp.String())
	}

	logger.Info("Elasticsearch connected",
		zap.Strings("hosts", hosts),
		zap.String("index", cfg.VideoIndex()),
	)
	return &Client{es: es, index: cfg.VideoIndex()}, nil
}

// IndexName 返回视频索引名
func (c *Client) IndexName() string {
	return c.index
}
