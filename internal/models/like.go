package models

import "time"

// LikeTarget enumerates the content kinds a like can attach to.
type LikeTarget string

const (
	// LikeTargetVideo marks a like on a video.
	LikeTargetVideo LikeTarget = "video"
	// LikeTargetComment marks a like on a comment.
	LikeTargetComment LikeTarget = "comment"
	// LikeTargetTweet marks a like on a tweet.
	LikeTargetTweet LikeTarget = "tweet"
)

// Like is the relationship edge from a user to a piece of content.
// (user_id, target_type, target_id) is unique; rows are hard-deleted so the
// constraint converges concurrent duplicate toggles. A like whose target was
// later deleted is a tombstone that aggregators filter out by join.
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_user_target" json:"userId"`
	TargetType LikeTarget `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_target" json:"targetType"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_user_target;index" json:"targetId"`
	CreatedAt  time.Time  `json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "likes"
}
