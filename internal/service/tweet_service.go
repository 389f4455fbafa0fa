package service

import (
	"context"
	"strings"

	"videotube/internal/models"
	"videotube/internal/repository"
)

const maxTweetLen = 500

// TweetService manages short text posts on channels.
type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

func NewTweetService(
	tweetRepo repository.TweetRepository,
	userRepo repository.UserRepository,
) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (s *TweetService) Create(ctx context.Context, userID uint, content string) (*models.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxTweetLen {
		return nil, models.NewValidationError("Tweet too long (max 500 characters)")
	}

	tweet := &models.Tweet{OwnerID: userID, Content: content}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) ListByUser(ctx context.Context, userID uint) ([]models.Tweet, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.tweetRepo.ListByOwner(ctx, userID)
}

func (s *TweetService) Update(ctx context.Context, userID, tweetID uint, content string) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != userID {
		return nil, models.NewForbiddenError("You can only update your own tweets")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxTweetLen {
		return nil, models.NewValidationError("Tweet too long (max 500 characters)")
	}

	tweet.Content = content
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, userID, tweetID uint) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own tweets")
	}
	return s.tweetRepo.Delete(ctx, tweetID)
}
