package models

import (
	"time"

	"gorm.io/gorm"
)

// Video represents an uploaded video's metadata. The media files themselves
// live in object storage; only their URLs are persisted here.
type Video struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OwnerID     uint    `gorm:"not null;index" json:"ownerId"`
	Owner       User    `gorm:"foreignKey:OwnerID" json:"-"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	VideoFile   string  `gorm:"not null" json:"videoFile"`
	Thumbnail   string  `gorm:"not null" json:"thumbnail"`
	Duration    float64 `json:"duration"`
	// Views is a best-effort popularity counter; concurrent fetches may
	// under-count and that is accepted.
	Views       int64          `gorm:"not null;default:0" json:"views"`
	IsPublished bool           `gorm:"not null;default:true" json:"isPublished"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// OwnerInfo is the minimal owner projection resolved at query time.
	OwnerInfo *OwnerProjection `gorm:"-" json:"owner,omitempty"`
}
