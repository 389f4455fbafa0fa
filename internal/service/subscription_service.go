package service

import (
	"context"

	"videotube/internal/cache"
	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/repository"
)

// SubscriptionService manages subscription edges between viewers and channels.
type SubscriptionService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
}

func NewSubscriptionService(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
) *SubscriptionService {
	return &SubscriptionService{userRepo: userRepo, subRepo: subRepo}
}

// Toggle flips the subscriber's edge to the channel and returns the
// resulting state: true when now subscribed, false when now unsubscribed.
// Concurrent toggles converge through the unique edge constraint, so a lost
// race reports the state the winner produced.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	if channelID == 0 {
		return false, models.NewValidationError("Channel ID is required")
	}
	channel, err := s.userRepo.GetByID(ctx, channelID)
	if err != nil {
		return false, err
	}

	subscribed := false
	removed, err := s.subRepo.Delete(ctx, subscriberID, channel.ID)
	if err != nil {
		return false, err
	}
	if !removed {
		// Not subscribed: create the edge. A concurrent creator winning the
		// race still lands us in the subscribed state.
		if _, err := s.subRepo.Create(ctx, subscriberID, channel.ID); err != nil {
			return false, err
		}
		subscribed = true
	}

	cache.InvalidateProfile(ctx, channel.Username)
	// The subscriber's own cached profile carries subscribedToCount, so the
	// flip staled it too.
	if subscriber, err := s.userRepo.GetByID(ctx, subscriberID); err == nil {
		cache.InvalidateProfile(ctx, subscriber.Username)
	}
	state := "unsubscribed"
	if subscribed {
		state = "subscribed"
	}
	middleware.SubscriptionToggles.WithLabelValues(state).Inc()
	return subscribed, nil
}

// ListSubscribers returns the users subscribed to a channel.
func (s *SubscriptionService) ListSubscribers(ctx context.Context, channelID uint) ([]models.OwnerProjection, error) {
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}
	return s.subRepo.ListSubscribers(ctx, channelID)
}

// ListSubscribedChannels returns the channels a user is subscribed to.
func (s *SubscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID uint) ([]models.OwnerProjection, error) {
	if _, err := s.userRepo.GetByID(ctx, subscriberID); err != nil {
		return nil, err
	}
	return s.subRepo.ListChannels(ctx, subscriberID)
}
