package models

import "time"

// Subscription is the relationship edge from a subscriber to a channel.
// The composite unique index is the authoritative guard against duplicate
// edges under concurrent toggles; rows are hard-deleted so the constraint
// always reflects live state.
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubscriberID uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel" json:"subscriberId"`
	ChannelID    uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel;index" json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`

	// Relationships
	Subscriber User `gorm:"foreignKey:SubscriberID" json:"-"`
	Channel    User `gorm:"foreignKey:ChannelID" json:"-"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}
