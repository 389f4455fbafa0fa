package models

import (
	"time"

	"gorm.io/gorm"
)

// Playlist is an owner-curated, ordered collection of videos.
type Playlist struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OwnerID     uint           `gorm:"not null;index" json:"ownerId"`
	Owner       User           `gorm:"foreignKey:OwnerID" json:"-"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Videos is resolved through playlist_videos in insertion order.
	Videos    []Video          `gorm:"-" json:"videos,omitempty"`
	OwnerInfo *OwnerProjection `gorm:"-" json:"owner,omitempty"`
}

// PlaylistVideo is the join row linking a playlist to a video.
// Position preserves insertion order; the composite unique index rejects
// duplicate membership.
type PlaylistVideo struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID uint      `gorm:"not null;uniqueIndex:idx_playlist_video" json:"playlistId"`
	VideoID    uint      `gorm:"not null;uniqueIndex:idx_playlist_video" json:"videoId"`
	Position   int       `gorm:"not null" json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
