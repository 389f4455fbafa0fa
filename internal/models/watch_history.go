package models

import "time"

// WatchHistoryEntry records that a user watched a video. A repeat view
// updates WatchedAt on the existing row instead of appending a duplicate, so
// the history is deduped and ordered most-recent-first.
type WatchHistoryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_video" json:"userId"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_user_video" json:"videoId"`
	WatchedAt time.Time `gorm:"not null;index" json:"watchedAt"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

// TableName specifies the table name for GORM
func (WatchHistoryEntry) TableName() string {
	return "watch_history"
}
