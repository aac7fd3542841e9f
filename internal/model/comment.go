package model

import "time"

// Comment 评论模型
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	VideoID   int64     `gorm:"not null;index:idx_comments_video_created,priority:1;comment:被评论视频ID" json:"videoId"`
	OwnerID   int64     `gorm:"not null;index;comment:评论用户ID" json:"ownerId"`
	Content   string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_video_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
