package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	"vidverse/pkg/logger"

	"go.uber.org/zap"
)

// videosMapping 视频索引 mapping；title 带 keyword 子字段用于精确排序
const videosMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"owner_id": {"type": "long"},
			"owner_name": {"type": "keyword"},
			"title": {
				"type": "text",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
			},
			"description": {"type": "text"},
			"views": {"type": "long"},
			"duration": {"type": "float"},
			"is_published": {"type": "boolean"},
			"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// EnsureIndex 索引不存在时按 mapping 创建
func (c *Client) EnsureIndex(ctx context.Context) error {
	resp, err := c.es.Indices.Exists([]string{c.index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Debug("Elasticsearch index already exists", zap.String("index", c.index))
		return nil
	}

	resp, err = c.es.Indices.Create(
		c.index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(strings.NewReader(videosMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch index created", zap.String("index", c.index))
	return nil
}
