package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vidverse/internal/model"
	"vidverse/pkg/logger"

	"go.uber.org/zap"
)

// videoDoc 索引中的视频文档
type videoDoc struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"owner_id"`
	OwnerName   string  `json:"owner_name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Views       int64   `json:"views"`
	Duration    float64 `json:"duration"`
	IsPublished bool    `json:"is_published"`
	CreatedAt   string  `json:"created_at"`
}

func toDoc(v *model.Video) *videoDoc {
	return &videoDoc{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		OwnerName:   v.OwnerName,
		Title:       v.Title,
		Description: v.Description,
		Views:       v.Views,
		Duration:    v.Duration,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
	}
}

// IndexVideo 写入或覆盖单个视频文档
func (c *Client) IndexVideo(ctx context.Context, v *model.Video) error {
	body, err := json.Marshal(toDoc(v))
	if err != nil {
		return err
	}

	resp, err := c.es.Index(
		c.index,
		bytes.NewReader(body),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(strconv.FormatInt(v.ID, 10)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video indexed", zap.Int64("video_id", v.ID))
	return nil
}

// DeleteVideo 删除视频文档，文档不存在视为成功
func (c *Client) DeleteVideo(ctx context.Context, videoID int64) error {
	resp, err := c.es.Delete(c.index, strconv.FormatInt(videoID, 10), c.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkIndexVideos 批量重建索引，返回成功与失败条数
func (c *Client) BulkIndexVideos(ctx context.Context, videos []model.Video) (success, failed int, err error) {
	if len(videos) == 0 {
		return 0, 0, nil
	}

	var buf strings.Builder
	for i := range videos {
		docBody, err := json.Marshal(toDoc(&videos[i]))
		if err != nil {
			return 0, len(videos), err
		}
		fmt.Fprintf(&buf, `{"index":{"_index":"%s","_id":"%d"}}`+"\n", c.index, videos[i].ID)
		buf.Write(docBody)
		buf.WriteString("\n")
	}

	resp, err := c.es.Bulk(strings.NewReader(buf.String()), c.es.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(videos), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(videos), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Items []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, 0, fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk index completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// SearchVideos 全文检索已发布视频，返回当前页 id（按相关度）和命中总数
func (c *Client) SearchVideos(ctx context.Context, keyword string, page, limit int) ([]int64, int64, error) {
	query := map[string]interface{}{
		"from": (page - 1) * limit,
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":  keyword,
							"fields": []string{"title^3", "description", "owner_name^2"},
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"is_published": true}},
				},
			},
		},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"created_at": map[string]string{"order": "desc"}},
		},
		"_source": []string{"id"},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
		c.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, 0, fmt.Errorf("search failed: %s", resp.String())
	}

	var result struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, h := range result.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, result.Hits.Total.Value, nil
}
