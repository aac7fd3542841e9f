package repository

import (
	"context"
	"strings"

	"vidverse/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// VideoFilter 视频列表筛选条件
type VideoFilter struct {
	Query         string
	OwnerID       *int64
	PublishedOnly bool
	Offset        int
	Limit         int
}

// ChannelStats 频道统计
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

// Create 创建视频记录
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return wrap(r.db.WithContext(ctx).Create(video).Error, "create video")
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, wrap(err, "get video by id")
	}
	return &video, nil
}

// GetByIDs 批量查询，返回顺序与 ids 一致，不存在的 id 跳过
func (r *VideoRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []model.Video
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, wrap(err, "get videos by ids")
	}

	byID := make(map[int64]model.Video, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}
	videos := make([]model.Video, 0, len(found))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

// Exists 检查视频是否存在
func (r *VideoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrap(err, "check video exists")
	}
	return count > 0, nil
}

// VisibleTo 视频存在且对 viewerID 可见（已发布，或 viewerID 是上传者）
func (r *VideoRepository) VisibleTo(ctx context.Context, id, viewerID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ?", id).
		Where("(is_published = ? OR owner_id = ?)", true, viewerID).
		Count(&count).Error
	if err != nil {
		return false, wrap(err, "check video visible")
	}
	return count > 0, nil
}

// List 分页列表，按创建时间倒序；总数单独 COUNT
func (r *VideoRepository) List(ctx context.Context, f VideoFilter) ([]model.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Video{})

	if f.OwnerID != nil {
		query = query.Where("owner_id = ?", *f.OwnerID)
	}
	if f.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrap(err, "count videos")
	}

	var videos []model.Video
	err := query.Order("created_at DESC").Order("id DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, wrap(err, "list videos")
	}
	return videos, total, nil
}

// ListAfter 按 id 升序分批扫描全部视频，用于重建搜索索引
func (r *VideoRepository) ListAfter(ctx context.Context, afterID int64, limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, wrap(err, "scan videos")
	}
	return videos, nil
}

// UpdateOwned 仅当 owner 匹配时更新；影响 0 行返回 ErrRecordNotFound
func (r *VideoRepository) UpdateOwned(ctx context.Context, id, ownerID int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updates)
	if result.Error != nil {
		return nil, wrap(result.Error, "update video")
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// TogglePublishOwned 切换发布状态
func (r *VideoRepository) TogglePublishOwned(ctx context.Context, id, ownerID int64) (*model.Video, error) {
	return r.UpdateOwned(ctx, id, ownerID, map[string]interface{}{
		"is_published": gorm.Expr("NOT is_published"),
	})
}

// DeleteOwned 在一个事务里删除视频及其点赞、评论（含评论点赞）、播放列表条目和观看记录
func (r *VideoRepository) DeleteOwned(ctx context.Context, id, ownerID int64) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&video).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Video{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", id)
		if err := tx.Where("target_type = ? AND target_id IN (?)", model.LikeTargetComment, commentIDs).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetVideo, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Where("video_id = ?", id).Delete(&model.WatchHistory{}).Error
	})
	if err != nil {
		return nil, wrap(err, "delete video")
	}
	return &video, nil
}

// IncrementViews 播放量 +1
func (r *VideoRepository) IncrementViews(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	return wrap(err, "increment views")
}

// SetDuration 写入探测得到的时长
func (r *VideoRepository) SetDuration(ctx context.Context, id int64, seconds float64) (*model.Video, error) {
	result := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("duration", seconds)
	if result.Error != nil {
		return nil, wrap(result.Error, "set duration")
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// LikedVideos 用户点赞过的视频，最近点赞在前；他人已下架的视频不返回
func (r *VideoRepository) LikedVideos(ctx context.Context, userID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Select("videos.*").
		Joins("JOIN likes l ON l.target_id = videos.id AND l.target_type = ?", model.LikeTargetVideo).
		Where("l.liked_by = ?", userID).
		Where("(videos.is_published = ? OR videos.owner_id = ?)", true, userID).
		Order("l.id DESC").
		Preload("Owner").
		Find(&videos).Error
	if err != nil {
		return nil, wrap(err, "liked videos")
	}
	return videos, nil
}

// ChannelStats 频道总视频数、总播放量、订阅数、视频获赞数
func (r *VideoRepository) ChannelStats(ctx context.Context, ownerID int64) (*ChannelStats, error) {
	var stats ChannelStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM videos v WHERE v.owner_id = ?) AS total_videos,
			(SELECT COALESCE(SUM(v.views), 0) FROM videos v WHERE v.owner_id = ?) AS total_views,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = ?) AS total_subscribers,
			(SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.target_id
				WHERE l.target_type = ? AND v.owner_id = ?) AS total_likes
	`, ownerID, ownerID, ownerID, model.LikeTargetVideo, ownerID).Scan(&stats).Error
	if err != nil {
		return nil, wrap(err, "channel stats")
	}
	return &stats, nil
}
