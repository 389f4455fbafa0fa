package repository

import (
	"context"
	"errors"

	"videotube/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	ListByVideo(ctx context.Context, videoID uint, page, limit int) (*models.Page, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

// ListByVideo pages through a video's comments newest first, hydrating the
// commenter projection in one extra query.
func (r *commentRepository) ListByVideo(ctx context.Context, videoID uint, page, limit int) (*models.Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&models.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var comments []models.Comment
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := r.attachOwners(ctx, comments); err != nil {
		return nil, err
	}
	return models.NewPage(comments, page, limit, total), nil
}

func (r *commentRepository) attachOwners(ctx context.Context, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	ownerIDs := make([]uint, 0, len(comments))
	seen := make(map[uint]bool, len(comments))
	for i := range comments {
		if !seen[comments[i].OwnerID] {
			seen[comments[i].OwnerID] = true
			ownerIDs = append(ownerIDs, comments[i].OwnerID)
		}
	}
	var owners []models.OwnerProjection
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id, username, full_name, avatar").
		Where("id IN ?", ownerIDs).
		Scan(&owners).Error; err != nil {
		return models.NewInternalError(err)
	}
	byID := make(map[uint]*models.OwnerProjection, len(owners))
	for i := range owners {
		byID[owners[i].ID] = &owners[i]
	}
	for i := range comments {
		comments[i].OwnerInfo = byID[comments[i].OwnerID]
	}
	return nil
}
