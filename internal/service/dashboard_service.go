package service

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/repository"
)

// DashboardService assembles the channel owner's statistics view.
type DashboardService struct {
	videoRepo repository.VideoRepository
	subRepo   repository.SubscriptionRepository
	likeRepo  repository.LikeRepository
}

func NewDashboardService(
	videoRepo repository.VideoRepository,
	subRepo repository.SubscriptionRepository,
	likeRepo repository.LikeRepository,
) *DashboardService {
	return &DashboardService{videoRepo: videoRepo, subRepo: subRepo, likeRepo: likeRepo}
}

// Stats aggregates subscriber, video, view and like totals for the channel.
func (s *DashboardService) Stats(ctx context.Context, channelID uint) (*models.DashboardStats, error) {
	subscribers, err := s.subRepo.CountSubscribers(ctx, channelID)
	if err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.CountByOwner(ctx, channelID)
	if err != nil {
		return nil, err
	}
	views, err := s.videoRepo.SumViewsByOwner(ctx, channelID)
	if err != nil {
		return nil, err
	}
	likes, err := s.likeRepo.CountForChannelVideos(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return &models.DashboardStats{
		TotalSubscribers: subscribers,
		TotalVideos:      videos,
		TotalViews:       views,
		TotalLikes:       likes,
	}, nil
}

// Videos lists the channel's uploads for its owner, drafts included.
func (s *DashboardService) Videos(ctx context.Context, channelID uint) ([]models.Video, error) {
	return s.videoRepo.ListByOwner(ctx, channelID, true)
}
