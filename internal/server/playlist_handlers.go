package server

import (
	"videotube/internal/models"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePlaylist handles POST /api/v1/playlists.
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	playlist, err := s.playlistService.Create(c.UserContext(), service.CreatePlaylistInput{
		OwnerID:     s.currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, playlist, "Playlist created successfully")
}

// GetPlaylistByID handles GET /api/v1/playlists/:playlistId.
func (s *Server) GetPlaylistByID(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.Get(c.UserContext(), playlistID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist fetched successfully")
}

// GetUserPlaylists handles GET /api/v1/playlists/user/:userId.
func (s *Server) GetUserPlaylists(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	playlists, err := s.playlistService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlists, "Playlists fetched successfully")
}

// UpdatePlaylist handles PATCH /api/v1/playlists/:playlistId.
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	playlist, err := s.playlistService.Update(c.UserContext(), service.UpdatePlaylistInput{
		UserID:      s.currentUserID(c),
		PlaylistID:  playlistID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist updated successfully")
}

// DeletePlaylist handles DELETE /api/v1/playlists/:playlistId.
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	if err := s.playlistService.Delete(c.UserContext(), s.currentUserID(c), playlistID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{}, "Playlist deleted successfully")
}

// AddVideoToPlaylist handles PATCH /api/v1/playlists/add/:videoId/:playlistId.
func (s *Server) AddVideoToPlaylist(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.AddVideo(c.UserContext(), s.currentUserID(c), playlistID, videoID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Video added to playlist successfully")
}

// RemoveVideoFromPlaylist handles PATCH /api/v1/playlists/remove/:videoId/:playlistId.
func (s *Server) RemoveVideoFromPlaylist(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistService.RemoveVideo(c.UserContext(), s.currentUserID(c), playlistID, videoID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Video removed from playlist successfully")
}
