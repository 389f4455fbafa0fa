package server

import (
	"videotube/internal/models"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetVideoComments handles GET /api/v1/comments/:videoId.
func (s *Server) GetVideoComments(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	p := parsePagination(c)
	page, err := s.commentService.ListByVideo(c.UserContext(), videoID, p.Page, p.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Comments fetched successfully")
}

// AddComment handles POST /api/v1/comments/:videoId.
func (s *Server) AddComment(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
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

	comment, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		UserID:  s.currentUserID(c),
		VideoID: videoID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, comment, "Comment added successfully")
}

// UpdateComment handles PATCH /api/v1/comments/c/:commentId.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
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

	comment, err := s.commentService.Update(c.UserContext(), service.UpdateCommentInput{
		UserID:    s.currentUserID(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, comment, "Comment updated successfully")
}

// DeleteComment handles DELETE /api/v1/comments/c/:commentId.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.Delete(c.UserContext(), s.currentUserID(c), commentID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{}, "Comment deleted successfully")
}
