package model

import "time"

// User 用户模型
type User struct {
	ID               int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username         string    `gorm:"size:64;not null;uniqueIndex;comment:用户名（小写）" json:"username"`
	Email            string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱（小写）" json:"email"`
	FullName         string    `gorm:"size:128;not null;index;comment:昵称" json:"fullName"`
	Password         string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	Avatar           string    `gorm:"size:500;not null;comment:头像地址" json:"avatar"`
	CoverImage       *string   `gorm:"size:500;comment:频道封面" json:"coverImage"`
	RefreshTokenHash *string   `gorm:"size:128;comment:refresh token 的 sha256" json:"-"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// 关联关系
	Videos []Video `gorm:"foreignKey:OwnerID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// WatchHistory 观看记录，按 ID 顺序即用户的观看历史列表
type WatchHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_watch_history_user_video,priority:1" json:"userId"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_watch_history_user_video,priority:2;index" json:"videoId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
