package server

import (
	"videotube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleVideoLike handles POST /api/v1/likes/toggle/v/:videoId.
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.ToggleVideo(c.UserContext(), s.currentUserID(c), videoID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"liked": liked,
	}, "Video like toggled successfully")
}

// ToggleCommentLike handles POST /api/v1/likes/toggle/c/:commentId.
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.ToggleComment(c.UserContext(), s.currentUserID(c), commentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"liked": liked,
	}, "Comment like toggled successfully")
}

// ToggleTweetLike handles POST /api/v1/likes/toggle/t/:tweetId.
func (s *Server) ToggleTweetLike(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	liked, err := s.likeService.ToggleTweet(c.UserContext(), s.currentUserID(c), tweetID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"liked": liked,
	}, "Tweet like toggled successfully")
}

// GetLikedVideos handles GET /api/v1/likes/videos.
func (s *Server) GetLikedVideos(c *fiber.Ctx) error {
	videos, err := s.likeService.ListLikedVideos(c.UserContext(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, videos, "Liked videos fetched successfully")
}
