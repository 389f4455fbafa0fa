package server

import (
	"strconv"
	"strings"

	"videotube/internal/models"
	"videotube/internal/repository"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllVideos handles GET /api/v1/videos.
// Query parameters: page, limit, query (title search), sortBy, sortType
// (asc|desc), userId (filter by channel).
func (s *Server) GetAllVideos(c *fiber.Ctx) error {
	p := parsePagination(c)

	params := repository.VideoListParams{
		Query:         strings.TrimSpace(c.Query("query")),
		SortBy:        c.Query("sortBy"),
		SortOrder:     c.Query("sortType"),
		Page:          p.Page,
		Limit:         p.Limit,
		PublishedOnly: true,
	}

	if rawOwner := c.Query("userId"); rawOwner != "" {
		ownerID, err := strconv.ParseUint(rawOwner, 10, 32)
		if err != nil || ownerID == 0 {
			return models.RespondWithError(c,
				models.NewValidationError("Invalid user ID"))
		}
		params.OwnerID = uint(ownerID)
	}

	page, err := s.videoService.List(c.UserContext(), params)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Videos fetched successfully")
}

// PublishVideo handles POST /api/v1/videos.
// The request is multipart: title, description, duration plus the video file
// and a thumbnail image.
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	videoFile, _ := c.FormFile("videoFile")
	thumbnail, _ := c.FormFile("thumbnail")

	duration := 0.0
	if rawDuration := c.FormValue("duration"); rawDuration != "" {
		parsed, err := strconv.ParseFloat(rawDuration, 64)
		if err != nil || parsed < 0 {
			return models.RespondWithError(c,
				models.NewValidationError("Invalid duration"))
		}
		duration = parsed
	}

	video, err := s.videoService.Publish(c.UserContext(), service.PublishVideoInput{
		OwnerID:     s.currentUserID(c),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
		Duration:    duration,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, video, "Video published successfully")
}

// GetVideoByID handles GET /api/v1/videos/:id.
// Fetching a video counts a view; signed-in viewers also get it recorded in
// their watch history.
func (s *Server) GetVideoByID(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	video, err := s.videoService.Watch(c.UserContext(), videoID, viewerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video fetched successfully")
}

// UpdateVideo handles PATCH /api/v1/videos/:id.
// Accepts multipart or JSON; a provided thumbnail file replaces the stored one.
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	in := service.UpdateVideoInput{
		UserID:  s.currentUserID(c),
		VideoID: videoID,
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		in.Title = c.FormValue("title")
		in.Description = c.FormValue("description")
		in.Thumbnail, _ = c.FormFile("thumbnail")
	} else {
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if parseErr := c.BodyParser(&req); parseErr != nil {
			return models.RespondWithError(c,
				models.NewValidationError("Invalid request body"))
		}
		in.Title = req.Title
		in.Description = req.Description
	}

	video, err := s.videoService.Update(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video updated successfully")
}

// DeleteVideo handles DELETE /api/v1/videos/:id.
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.videoService.Delete(c.UserContext(), s.currentUserID(c), videoID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{}, "Video deleted successfully")
}

// TogglePublishStatus handles PATCH /api/v1/videos/toggle/publish/:id.
func (s *Server) TogglePublishStatus(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	published, err := s.videoService.TogglePublish(c.UserContext(), s.currentUserID(c), videoID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"isPublished": published,
	}, "Publish status toggled successfully")
}
