package model

import "time"

// Subscription 订阅关系：subscriber 订阅 channel
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:订阅关系id" json:"id"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uq_subscription_pair,priority:1;index;comment:订阅者id" json:"subscriberId"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uq_subscription_pair,priority:2;index;comment:频道（用户）id" json:"channelId"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:订阅时间" json:"createdAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
