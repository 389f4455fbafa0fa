package service

import (
	"context"
	"testing"

	"videotube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetChannelProfile_Anonymous(t *testing.T) {
	t.Parallel()

	channel := &models.User{
		ID: 7, Username: "creator", FullName: "The Creator",
		Email: "creator@example.com", Avatar: "a.png", CoverImage: "c.png",
		Password: "secret-hash", RefreshToken: "secret-token",
	}
	userRepo := noopUserRepo()
	userRepo.resolveChannelFn = func(_ context.Context, identifier string) (*models.User, error) {
		assert.Equal(t, "creator", identifier)
		return channel, nil
	}
	subRepo := noopSubRepo()
	subRepo.countSubscribersFn = func(_ context.Context, channelID uint) (int64, error) {
		assert.Equal(t, uint(7), channelID)
		return 42, nil
	}
	subRepo.countSubscribedToFn = func(context.Context, uint) (int64, error) { return 3, nil }
	subRepo.existsFn = func(context.Context, uint, uint) (bool, error) {
		t.Fatal("anonymous profile must not check subscription state")
		return false, nil
	}

	svc := NewProfileService(userRepo, subRepo)
	profile, err := svc.GetChannelProfile(context.Background(), "creator", 0)
	require.NoError(t, err)

	assert.Equal(t, uint(7), profile.ID)
	assert.Equal(t, int64(42), profile.SubscribersCount)
	assert.Equal(t, int64(3), profile.SubscribedToCount)
	assert.False(t, profile.IsSubscribed)
	assert.Equal(t, "The Creator", profile.FullName)
	assert.Equal(t, "c.png", profile.CoverImage)
}

func TestProfileService_GetChannelProfile_ViewerSubscriptionState(t *testing.T) {
	t.Parallel()

	channel := &models.User{ID: 7, Username: "creator"}
	userRepo := noopUserRepo()
	userRepo.resolveChannelFn = func(context.Context, string) (*models.User, error) {
		return channel, nil
	}

	for _, subscribed := range []bool{true, false} {
		subRepo := noopSubRepo()
		subRepo.existsFn = func(_ context.Context, subscriberID, channelID uint) (bool, error) {
			assert.Equal(t, uint(99), subscriberID)
			assert.Equal(t, uint(7), channelID)
			return subscribed, nil
		}

		svc := NewProfileService(userRepo, subRepo)
		profile, err := svc.GetChannelProfile(context.Background(), "creator", 99)
		require.NoError(t, err)
		assert.Equal(t, subscribed, profile.IsSubscribed)
	}
}

func TestProfileService_GetChannelProfile_UnknownChannel(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.resolveChannelFn = func(context.Context, string) (*models.User, error) {
		return nil, models.NewNotFoundMessageError("Channel not found")
	}

	svc := NewProfileService(userRepo, noopSubRepo())
	_, err := svc.GetChannelProfile(context.Background(), "nobody", 0)
	assertStatusError(t, err, 404)
}
