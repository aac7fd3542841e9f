package repository

import (
	"context"

	"vidverse/internal/model"

	"gorm.io/gorm"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// PlaylistSummary 列表项：播放列表 + 已发布视频数
type PlaylistSummary struct {
	model.Playlist
	VideoCount int64 `json:"videoCount"`
}

// Create 创建播放列表，videoID 非空时作为第一个条目
func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist, videoID *int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(playlist).Error; err != nil {
			return err
		}
		if videoID == nil {
			return nil
		}
		return tx.Create(&model.PlaylistVideo{PlaylistID: playlist.ID, VideoID: *videoID}).Error
	})
	return wrap(err, "create playlist")
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, id).Error; err != nil {
		return nil, wrap(err, "get playlist by id")
	}
	return &playlist, nil
}

// ListByOwner 用户的播放列表，最新在前
func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID int64) ([]PlaylistSummary, error) {
	var rows []PlaylistSummary
	err := r.db.WithContext(ctx).Model(&model.Playlist{}).
		Select(`playlists.*,
			(SELECT COUNT(*) FROM playlist_videos pv JOIN videos v ON v.id = pv.video_id
			 WHERE pv.playlist_id = playlists.id AND v.is_published = ?) AS video_count`, true).
		Where("playlists.owner_id = ?", ownerID).
		Order("playlists.created_at DESC").Order("playlists.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap(err, "list playlists")
	}
	return rows, nil
}

// Videos 按列表顺序返回播放列表内的视频
func (r *PlaylistRepository) Videos(ctx context.Context, playlistID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Select("videos.*").
		Joins("JOIN playlist_videos pv ON pv.video_id = videos.id").
		Where("pv.playlist_id = ?", playlistID).
		Order("pv.id ASC").
		Preload("Owner").
		Find(&videos).Error
	if err != nil {
		return nil, wrap(err, "playlist videos")
	}
	return videos, nil
}

// VideoIDs 按列表顺序返回视频 ID
func (r *PlaylistRepository) VideoIDs(ctx context.Context, playlistID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Order("id ASC").
		Pluck("video_id", &ids).Error
	return ids, wrap(err, "playlist video ids")
}

// PublishedCount 播放列表中已发布视频的数量，与详情中展开的视频数一致
func (r *PlaylistRepository) PublishedCount(ctx context.Context, playlistID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Joins("JOIN videos v ON v.id = playlist_videos.video_id").
		Where("playlist_videos.playlist_id = ? AND v.is_published = ?", playlistID, true).
		Count(&count).Error
	return count, wrap(err, "count playlist videos")
}

// Contains 视频是否已在播放列表中
func (r *PlaylistRepository) Contains(ctx context.Context, playlistID, videoID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Count(&count).Error
	if err != nil {
		return false, wrap(err, "check playlist entry")
	}
	return count > 0, nil
}

// AddVideoOwned 仅当播放列表属于 ownerID 时追加视频，返回影响行数。
// 已存在的条目由唯一索引拦下，影响 0 行
func (r *PlaylistRepository) AddVideoOwned(ctx context.Context, playlistID, ownerID, videoID int64) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO playlist_videos (playlist_id, video_id, created_at)
		SELECT p.id, CAST(? AS BIGINT), CURRENT_TIMESTAMP FROM playlists p WHERE p.id = ? AND p.owner_id = ?
		ON CONFLICT DO NOTHING`,
		videoID, playlistID, ownerID)
	if res.Error != nil {
		return 0, wrap(res.Error, "add playlist video")
	}
	return res.RowsAffected, nil
}

// RemoveVideoOwned 仅当播放列表属于 ownerID 时移除视频，返回影响行数
func (r *PlaylistRepository) RemoveVideoOwned(ctx context.Context, playlistID, ownerID, videoID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Where("EXISTS (SELECT 1 FROM playlists p WHERE p.id = playlist_videos.playlist_id AND p.owner_id = ?)", ownerID).
		Delete(&model.PlaylistVideo{})
	if res.Error != nil {
		return 0, wrap(res.Error, "remove playlist video")
	}
	return res.RowsAffected, nil
}

// UpdateOwned 更新名称/描述（仅所有者）
func (r *PlaylistRepository) UpdateOwned(ctx context.Context, id, ownerID int64, updates map[string]interface{}) (*model.Playlist, error) {
	result := r.db.WithContext(ctx).Model(&model.Playlist{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updates)
	if result.Error != nil {
		return nil, wrap(result.Error, "update playlist")
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteOwned 删除播放列表及其条目（仅所有者）
func (r *PlaylistRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Playlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error
	})
	return wrap(err, "delete playlist")
}

// VideoIDsByPlaylists 批量取多个播放列表的条目，按列表顺序
func (r *PlaylistRepository) VideoIDsByPlaylists(ctx context.Context, playlistIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(playlistIDs))
	if len(playlistIDs) == 0 {
		return out, nil
	}

	var entries []model.PlaylistVideo
	err := r.db.WithContext(ctx).
		Where("playlist_id IN ?", playlistIDs).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, wrap(err, "playlist entries")
	}
	for _, e := range entries {
		out[e.PlaylistID] = append(out[e.PlaylistID], e.VideoID)
	}
	return out, nil
}
