package dto

import "time"

// VideoPublishRequest 发布视频（multipart/form-data）
type VideoPublishRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

// VideoUpdateRequest 更新视频，缩略图为可选文件字段
type VideoUpdateRequest struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`
}

// VideoListQuery 视频列表查询
type VideoListQuery struct {
	PageQuery
	Query  string
	UserID *int64
}

// VideoInfo 视频信息
type VideoInfo struct {
	ID          int64       `json:"id"`
	OwnerID     int64       `json:"ownerId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Thumbnail   string      `json:"thumbnail"`
	VideoFile   string      `json:"videoFile"`
	Duration    float64     `json:"duration"`
	Views       int64       `json:"views"`
	IsPublished bool        `json:"isPublished"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Owner       *OwnerBrief `json:"owner,omitempty"`
}

// VideoDetail 视频详情，带点赞数和当前用户点赞状态
type VideoDetail struct {
	VideoInfo
	LikesCount int64 `json:"likesCount"`
	IsLiked    bool  `json:"isLiked"`
}

// ChannelStats 频道统计
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}
