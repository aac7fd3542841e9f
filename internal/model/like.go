package model

import "time"

// LikeTarget 点赞对象类型
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Like 点赞记录，(liked_by, target_type, target_id) 唯一
type Like struct {
	ID         int64      `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	LikedBy    int64      `gorm:"not null;uniqueIndex:uq_like_actor_target,priority:1;comment:点赞用户ID" json:"likedBy"`
	TargetType LikeTarget `gorm:"size:16;not null;uniqueIndex:uq_like_actor_target,priority:2;index:idx_likes_target,priority:1;comment:点赞对象类型" json:"targetType"`
	TargetID   int64      `gorm:"not null;uniqueIndex:uq_like_actor_target,priority:3;index:idx_likes_target,priority:2;comment:点赞对象ID" json:"targetId"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;comment:点赞时间" json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
