package repository

import (
	"context"
	"time"

	"videotube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryRepository defines persistence operations for watch history.
type HistoryRepository interface {
	Record(ctx context.Context, userID, videoID uint) error
	List(ctx context.Context, userID uint) ([]models.Video, error)
}

type historyRepository struct {
	db     *gorm.DB
	videos VideoRepository
}

// NewHistoryRepository returns a new HistoryRepository implementation. The
// video repository hydrates owner projections for the history listing.
func NewHistoryRepository(db *gorm.DB, videos VideoRepository) HistoryRepository {
	return &historyRepository{db: db, videos: videos}
}

// Record upserts the (user, video) entry, refreshing watched_at so a rewatch
// moves the video to the front of the history instead of duplicating it.
func (r *historyRepository) Record(ctx context.Context, userID, videoID uint) error {
	entry := models.WatchHistoryEntry{
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.Assignments(map[string]any{"watched_at": entry.WatchedAt}),
		}).
		Create(&entry).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// List returns the user's watch history, most recently watched first.
// Unpublished and deleted videos drop out of the listing.
func (r *historyRepository) List(ctx context.Context, userID uint) ([]models.Video, error) {
	var videos []models.Video
	if err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Joins("JOIN watch_history ON watch_history.video_id = videos.id").
		Where("watch_history.user_id = ? AND videos.is_published = ?", userID, true).
		Order("watch_history.watched_at DESC").
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.videos.AttachOwners(ctx, videos); err != nil {
		return nil, err
	}
	return videos, nil
}
