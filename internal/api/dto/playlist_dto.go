package dto

import "time"

// PlaylistCreateRequest 创建播放列表，VideoID 可选
type PlaylistCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	VideoID     string `json:"videoId"`
}

// PlaylistUpdateRequest 更新播放列表
type PlaylistUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// PlaylistInfo 播放列表信息，VideoIDs 按列表顺序；VideoCount 只计已发布视频
type PlaylistInfo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"ownerId"`
	VideoIDs    []int64   `json:"videoIds"`
	VideoCount  int64     `json:"videoCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistDetail 播放列表详情，视频按列表顺序
type PlaylistDetail struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Owner       *OwnerBrief `json:"owner"`
	Videos      []VideoInfo `json:"videos"`
	VideoCount  int         `json:"videoCount"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
