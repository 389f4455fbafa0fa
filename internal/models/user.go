// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Viewed publicly, a user is a channel.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"unique;not null" json:"username"`
	Email        string         `gorm:"unique;not null" json:"email"`
	FullName     string         `gorm:"not null" json:"fullName"`
	Password     string         `gorm:"not null" json:"-"`
	Avatar       string         `gorm:"not null" json:"avatar"`
	CoverImage   string         `json:"coverImage"`
	RefreshToken string         `json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Videos       []Video        `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
}

// OwnerProjection is the minimal public view of a user attached to owned
// content (videos, comments, playlists). It never carries credential fields.
type OwnerProjection struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// Projection returns the owner-facing public view of the user.
func (u *User) Projection() OwnerProjection {
	return OwnerProjection{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

// ChannelProfile is the derived public read model of a channel. Fields are
// allow-listed here; credential and token columns are never selected into it.
type ChannelProfile struct {
	ID                uint   `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"coverImage"`
	SubscribersCount  int64  `json:"subscribersCount"`
	SubscribedToCount int64  `json:"subscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}
