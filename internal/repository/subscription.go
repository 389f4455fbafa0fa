package repository

import (
	"context"

	"videotube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository defines persistence operations for subscription edges.
type SubscriptionRepository interface {
	CountSubscribers(ctx context.Context, channelID uint) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberID uint) (int64, error)
	Exists(ctx context.Context, subscriberID, channelID uint) (bool, error)
	Create(ctx context.Context, subscriberID, channelID uint) (bool, error)
	Delete(ctx context.Context, subscriberID, channelID uint) (bool, error)
	ListSubscribers(ctx context.Context, channelID uint) ([]models.OwnerProjection, error)
	ListChannels(ctx context.Context, subscriberID uint) ([]models.OwnerProjection, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository returns a new SubscriptionRepository implementation.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) CountSubscribers(ctx context.Context, channelID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *subscriptionRepository) CountSubscribedTo(ctx context.Context, subscriberID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Create inserts the edge if absent. The composite unique index absorbs the
// check-then-act race: a concurrent duplicate insert reports zero rows
// affected instead of an error, which callers treat as "already subscribed".
func (r *subscriptionRepository) Create(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	sub := models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "channel_id"}},
			DoNothing: true,
		}).
		Create(&sub)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return false, nil
		}
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete hard-removes the edge and reports whether a row was deleted.
func (r *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListSubscribers returns the minimal projection of every user subscribed to
// the channel. The inner join filters edges whose subscriber was deleted.
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uint) ([]models.OwnerProjection, error) {
	var subscribers []models.OwnerProjection
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Select("users.id, users.username, users.full_name, users.avatar").
		Joins("JOIN users ON users.id = subscriptions.subscriber_id AND users.deleted_at IS NULL").
		Where("subscriptions.channel_id = ?", channelID).
		Order("subscriptions.created_at DESC").
		Scan(&subscribers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return subscribers, nil
}

// ListChannels returns the minimal projection of every channel the user is
// subscribed to.
func (r *subscriptionRepository) ListChannels(ctx context.Context, subscriberID uint) ([]models.OwnerProjection, error) {
	var channels []models.OwnerProjection
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Select("users.id, users.username, users.full_name, users.avatar").
		Joins("JOIN users ON users.id = subscriptions.channel_id AND users.deleted_at IS NULL").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at DESC").
		Scan(&channels).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return channels, nil
}
