package repository

import (
	"context"

	"videotube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines persistence operations for like edges across the
// three likeable target types.
type LikeRepository interface {
	Create(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error)
	Delete(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error)
	Exists(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error)
	CountForTarget(ctx context.Context, targetType models.LikeTarget, targetID uint) (int64, error)
	CountForChannelVideos(ctx context.Context, channelID uint) (int64, error)
	ListLikedVideos(ctx context.Context, userID uint) ([]models.Video, error)
}

type likeRepository struct {
	db     *gorm.DB
	videos VideoRepository
}

// NewLikeRepository returns a new LikeRepository implementation. The video
// repository hydrates owner projections for ListLikedVideos.
func NewLikeRepository(db *gorm.DB, videos VideoRepository) LikeRepository {
	return &likeRepository{db: db, videos: videos}
}

// Create inserts the edge if absent, converging concurrent toggles through
// the composite unique index rather than erroring.
func (r *likeRepository) Create(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error) {
	like := models.Like{UserID: userID, TargetType: targetType, TargetID: targetID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_type"}, {Name: "target_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return false, nil
		}
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) CountForTarget(ctx context.Context, targetType models.LikeTarget, targetID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// CountForChannelVideos totals likes received across all of a channel's
// videos, joining through ownership so the dashboard never double counts.
func (r *likeRepository) CountForChannelVideos(ctx context.Context, channelID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Joins("JOIN videos ON videos.id = likes.target_id AND videos.deleted_at IS NULL").
		Where("likes.target_type = ? AND videos.owner_id = ?", models.LikeTargetVideo, channelID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// ListLikedVideos returns the published videos a user has liked, most recent
// like first.
func (r *likeRepository) ListLikedVideos(ctx context.Context, userID uint) ([]models.Video, error) {
	var videos []models.Video
	if err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Joins("JOIN likes ON likes.target_id = videos.id AND likes.target_type = ?", models.LikeTargetVideo).
		Where("likes.user_id = ? AND videos.is_published = ?", userID, true).
		Order("likes.created_at DESC").
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.videos.AttachOwners(ctx, videos); err != nil {
		return nil, err
	}
	return videos, nil
}
