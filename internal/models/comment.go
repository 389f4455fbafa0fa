package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a user's comment on a video.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	VideoID   uint           `gorm:"not null;index" json:"videoId"`
	Video     Video          `gorm:"foreignKey:VideoID" json:"-"`
	OwnerID   uint           `gorm:"not null;index" json:"ownerId"`
	Owner     User           `gorm:"foreignKey:OwnerID" json:"-"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OwnerInfo *OwnerProjection `gorm:"-" json:"owner,omitempty"`
}
