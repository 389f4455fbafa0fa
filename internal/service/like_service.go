package service

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/repository"
)

// LikeService manages like toggles across videos, comments and tweets.
type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// ToggleVideo flips the user's like on a video and returns the new state.
func (s *LikeService) ToggleVideo(ctx context.Context, userID, videoID uint) (bool, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return false, err
	}
	return s.toggle(ctx, userID, models.LikeTargetVideo, videoID)
}

// ToggleComment flips the user's like on a comment and returns the new state.
func (s *LikeService) ToggleComment(ctx context.Context, userID, commentID uint) (bool, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return false, err
	}
	return s.toggle(ctx, userID, models.LikeTargetComment, commentID)
}

// ToggleTweet flips the user's like on a tweet and returns the new state.
func (s *LikeService) ToggleTweet(ctx context.Context, userID, tweetID uint) (bool, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID); err != nil {
		return false, err
	}
	return s.toggle(ctx, userID, models.LikeTargetTweet, tweetID)
}

func (s *LikeService) toggle(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error) {
	removed, err := s.likeRepo.Delete(ctx, userID, targetType, targetID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if _, err := s.likeRepo.Create(ctx, userID, targetType, targetID); err != nil {
		return false, err
	}
	return true, nil
}

// ListLikedVideos returns the published videos the user has liked.
func (s *LikeService) ListLikedVideos(ctx context.Context, userID uint) ([]models.Video, error) {
	return s.likeRepo.ListLikedVideos(ctx, userID)
}
