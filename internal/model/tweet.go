package model

import "time"

// Tweet 频道动态
type Tweet struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   int64     `gorm:"not null;index" json:"ownerId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Tweet) TableName() string {
	return "tweets"
}
