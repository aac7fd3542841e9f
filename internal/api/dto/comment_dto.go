package dto

import "time"

// ContentRequest 评论/动态正文
type ContentRequest struct {
	Content string `json:"content"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID        int64       `json:"id"`
	VideoID   int64       `json:"videoId"`
	Content   string      `json:"content"`
	Owner     *OwnerBrief `json:"owner,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// TweetInfo 动态信息
type TweetInfo struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
