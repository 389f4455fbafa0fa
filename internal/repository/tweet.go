package repository

import (
	"context"
	"errors"

	"videotube/internal/models"

	"gorm.io/gorm"
)

// TweetRepository defines persistence operations for tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id uint) error
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Tweet, error)
}

type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository returns a new TweetRepository implementation.
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tweet", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Save(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Tweet{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Tweet", id)
	}
	return nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Tweet, error) {
	var tweets []models.Tweet
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tweets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}
