package server

import (
	"strings"

	"videotube/internal/models"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser handles GET /api/v1/users/current-user.
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.UserContext(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Current user fetched successfully")
}

// ChangePassword handles POST /api/v1/users/change-password.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	err := s.userService.ChangePassword(c.UserContext(), s.currentUserID(c),
		req.OldPassword, req.NewPassword)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{}, "Password changed successfully")
}

// UpdateAccountDetails handles PATCH /api/v1/users/update-details.
// Both fields are optional; blank fields keep their current value.
func (s *Server) UpdateAccountDetails(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateAccount(c.UserContext(), service.UpdateAccountInput{
		UserID:   s.currentUserID(c),
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Account details updated successfully")
}

// UpdateAvatar handles PATCH /api/v1/users/update-avatar.
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Avatar image is required"))
	}

	user, err := s.userService.UpdateAvatar(c.UserContext(), s.currentUserID(c), file)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Avatar updated successfully")
}

// UpdateCoverImage handles PATCH /api/v1/users/update-cover-image.
func (s *Server) UpdateCoverImage(c *fiber.Ctx) error {
	file, err := c.FormFile("coverImage")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Cover image is required"))
	}

	user, err := s.userService.UpdateCoverImage(c.UserContext(), s.currentUserID(c), file)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Cover image updated successfully")
}

// GetChannelProfile handles GET /api/v1/users/channel/:username.
// The route is public; for signed-in viewers the profile carries their
// subscription state.
func (s *Server) GetChannelProfile(c *fiber.Ctx) error {
	identifier := c.Params("username")
	viewerID, _ := s.optionalUserID(c)

	profile, err := s.profileService.GetChannelProfile(c.UserContext(), identifier, viewerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, profile, "Channel profile fetched successfully")
}

// GetWatchHistory handles GET /api/v1/users/history.
func (s *Server) GetWatchHistory(c *fiber.Ctx) error {
	videos, err := s.videoService.WatchHistory(c.UserContext(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, videos, "Watch history fetched successfully")
}
