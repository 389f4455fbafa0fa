package server

import (
	"videotube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateTweet handles POST /api/v1/tweets.
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.Create(c.UserContext(), s.currentUserID(c), req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, tweet, "Tweet created successfully")
}

// GetUserTweets handles GET /api/v1/tweets/user/:userId.
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	tweets, err := s.tweetService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, tweets, "Tweets fetched successfully")
}

// UpdateTweet handles PATCH /api/v1/tweets/:tweetId.
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.Update(c.UserContext(), s.currentUserID(c), tweetID, req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, tweet, "Tweet updated successfully")
}

// DeleteTweet handles DELETE /api/v1/tweets/:tweetId.
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	if err := s.tweetService.Delete(c.UserContext(), s.currentUserID(c), tweetID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{}, "Tweet deleted successfully")
}
