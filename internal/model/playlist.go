package model

import "time"

// Playlist 播放列表
type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	OwnerID     int64     `gorm:"not null;index" json:"ownerId"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo 播放列表条目，按 ID 顺序排列，同一视频只能出现一次
type PlaylistVideo struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PlaylistID int64     `gorm:"not null;uniqueIndex:uq_playlist_video,priority:1" json:"playlistId"`
	VideoID    int64     `gorm:"not null;uniqueIndex:uq_playlist_video,priority:2;index" json:"videoId"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}

// All 返回需要迁移的全部模型
func All() []interface{} {
	return []interface{}{
		&User{},
		&WatchHistory{},
		&Video{},
		&Comment{},
		&Tweet{},
		&Like{},
		&Subscription{},
		&Playlist{},
		&PlaylistVideo{},
	}
}
