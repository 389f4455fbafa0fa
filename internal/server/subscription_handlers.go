package server

import (
	"videotube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleSubscription handles POST /api/v1/subscriptions/c/:channelId.
// The operation converges: toggling twice returns to the starting state, and
// concurrent toggles settle on a single subscription row.
func (s *Server) ToggleSubscription(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	subscribed, err := s.subscriptionService.Toggle(c.UserContext(), s.currentUserID(c), channelID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	// Same key the channel profile projection uses for this flag.
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"isSubscribed": subscribed,
	}, "Subscription toggled successfully")
}

// GetChannelSubscribers handles GET /api/v1/subscriptions/c/:channelId.
func (s *Server) GetChannelSubscribers(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	subscribers, err := s.subscriptionService.ListSubscribers(c.UserContext(), channelID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, subscribers, "Subscribers fetched successfully")
}

// GetSubscribedChannels handles GET /api/v1/subscriptions/u/:subscriberId.
func (s *Server) GetSubscribedChannels(c *fiber.Ctx) error {
	subscriberID, err := s.parseID(c, "subscriberId")
	if err != nil {
		return nil
	}

	channels, err := s.subscriptionService.ListSubscribedChannels(c.UserContext(), subscriberID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, channels, "Subscribed channels fetched successfully")
}

// GetMySubscribedChannels handles GET /api/v1/subscriptions/channels.
func (s *Server) GetMySubscribedChannels(c *fiber.Ctx) error {
	channels, err := s.subscriptionService.ListSubscribedChannels(c.UserContext(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, channels, "Subscribed channels fetched successfully")
}
