package server

import (
	"videotube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetChannelStats handles GET /api/v1/dashboard/stats.
// Stats are always scoped to the authenticated channel owner.
func (s *Server) GetChannelStats(c *fiber.Ctx) error {
	stats, err := s.dashboardService.Stats(c.UserContext(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, stats, "Channel stats fetched successfully")
}

// GetChannelVideos handles GET /api/v1/dashboard/videos.
// Unlike the public listing this includes unpublished drafts.
func (s *Server) GetChannelVideos(c *fiber.Ctx) error {
	videos, err := s.dashboardService.Videos(c.UserContext(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, videos, "Channel videos fetched successfully")
}
