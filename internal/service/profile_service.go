// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"

	"videotube/internal/cache"
	"videotube/internal/models"
	"videotube/internal/repository"
)

// ProfileService assembles channel profile projections.
type ProfileService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
}

func NewProfileService(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
) *ProfileService {
	return &ProfileService{userRepo: userRepo, subRepo: subRepo}
}

// GetChannelProfile resolves the identifier to a channel and decorates it
// with subscriber counts and, for a signed-in viewer, their subscription
// state. viewerID 0 means anonymous; anonymous profiles are cacheable because
// isSubscribed is always false for them.
func (s *ProfileService) GetChannelProfile(ctx context.Context, identifier string, viewerID uint) (*models.ChannelProfile, error) {
	channel, err := s.userRepo.ResolveChannel(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if viewerID == 0 {
		var profile models.ChannelProfile
		err := cache.Aside(ctx, cache.ProfileKey(channel.Username), &profile, cache.ProfileTTL, func() error {
			built, err := s.buildProfile(ctx, channel)
			if err != nil {
				return err
			}
			profile = *built
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &profile, nil
	}

	profile, err := s.buildProfile(ctx, channel)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.subRepo.Exists(ctx, viewerID, channel.ID)
	if err != nil {
		return nil, err
	}
	profile.IsSubscribed = subscribed
	return profile, nil
}

func (s *ProfileService) buildProfile(ctx context.Context, channel *models.User) (*models.ChannelProfile, error) {
	subscribers, err := s.subRepo.CountSubscribers(ctx, channel.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subRepo.CountSubscribedTo(ctx, channel.ID)
	if err != nil {
		return nil, err
	}
	return &models.ChannelProfile{
		ID:                channel.ID,
		Username:          channel.Username,
		FullName:          channel.FullName,
		Email:             channel.Email,
		Avatar:            channel.Avatar,
		CoverImage:        channel.CoverImage,
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      false,
	}, nil
}
