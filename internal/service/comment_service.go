package service

import (
	"context"
	"strings"

	"videotube/internal/models"
	"videotube/internal/repository"
)

const maxCommentLen = 10000

// CommentService manages comments on videos.
type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

type CreateCommentInput struct {
	UserID  uint
	VideoID uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.videoRepo.GetByID(ctx, in.VideoID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		VideoID: in.VideoID,
		OwnerID: in.UserID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListByVideo(ctx context.Context, videoID uint, page, limit int) (*models.Page, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByVideo(ctx, videoID, page, limit)
}

func (s *CommentService) Update(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
