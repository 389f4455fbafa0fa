package repository

import (
	"context"
	"errors"

	"videotube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaylistRepository defines persistence operations for playlists and their
// ordered video membership.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id uint) (*models.Playlist, error)
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id uint) error
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Playlist, error)
	AddVideo(ctx context.Context, playlistID, videoID uint) error
	RemoveVideo(ctx context.Context, playlistID, videoID uint) (bool, error)
}

type playlistRepository struct {
	db     *gorm.DB
	videos VideoRepository
}

// NewPlaylistRepository returns a new PlaylistRepository implementation. The
// video repository hydrates owner projections for playlist videos.
func NewPlaylistRepository(db *gorm.DB, videos VideoRepository) PlaylistRepository {
	return &playlistRepository{db: db, videos: videos}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID loads a playlist with its videos in insertion order.
func (r *playlistRepository) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Playlist", id)
		}
		return nil, models.NewInternalError(err)
	}

	var entries []models.PlaylistVideo
	if err := r.db.WithContext(ctx).
		Where("playlist_id = ?", id).
		Order("position ASC").
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	ids := make([]uint, len(entries))
	for i, e := range entries {
		ids[i] = e.VideoID
	}
	videos, err := r.videos.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Reorder the unordered batch fetch back into playlist positions.
	byID := make(map[uint]models.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	ordered := make([]models.Video, 0, len(entries))
	for _, e := range entries {
		if v, ok := byID[e.VideoID]; ok {
			ordered = append(ordered, v)
		}
	}
	playlist.Videos = ordered
	return &playlist, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	if err := r.db.WithContext(ctx).Save(playlist).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Playlist{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Playlist", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&playlists).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return playlists, nil
}

// AddVideo appends the video at the end of the playlist. Re-adding an
// existing member is a no-op, keeping its original position.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		if err := tx.Model(&models.PlaylistVideo{}).
			Where("playlist_id = ?", playlistID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error; err != nil {
			return err
		}
		entry := models.PlaylistVideo{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   maxPos + 1,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "playlist_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).Create(&entry).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

// RemoveVideo detaches the video and reports whether it was a member.
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&models.PlaylistVideo{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}
