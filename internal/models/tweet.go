package models

import (
	"time"

	"gorm.io/gorm"
)

// Tweet represents a short text update posted by a channel.
type Tweet struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OwnerID   uint           `gorm:"not null;index" json:"ownerId"`
	Owner     User           `gorm:"foreignKey:OwnerID" json:"-"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
