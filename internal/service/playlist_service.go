package service

import (
	"context"
	"strings"

	"videotube/internal/models"
	"videotube/internal/repository"
)

// PlaylistService manages user playlists and their video membership.
type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
}

type CreatePlaylistInput struct {
	OwnerID     uint
	Name        string
	Description string
}

type UpdatePlaylistInput struct {
	UserID      uint
	PlaylistID  uint
	Name        string
	Description string
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		userRepo:     userRepo,
	}
}

func (s *PlaylistService) Create(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	playlist := &models.Playlist{
		OwnerID:     in.OwnerID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Get(ctx context.Context, playlistID uint) (*models.Playlist, error) {
	return s.playlistRepo.GetByID(ctx, playlistID)
}

func (s *PlaylistService) ListByUser(ctx context.Context, userID uint) ([]models.Playlist, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.playlistRepo.ListByOwner(ctx, userID)
}

func (s *PlaylistService) Update(ctx context.Context, in UpdatePlaylistInput) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, in.PlaylistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own playlists")
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		playlist.Name = name
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		playlist.Description = desc
	}
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, userID, playlistID uint) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own playlists")
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

// AddVideo appends a video to the caller's playlist. Adding an existing
// member is a no-op.
func (s *PlaylistService) AddVideo(ctx context.Context, userID, playlistID, videoID uint) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != userID {
		return nil, models.NewForbiddenError("You can only modify your own playlists")
	}
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, err
	}
	if err := s.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, playlistID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, userID, playlistID, videoID uint) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != userID {
		return nil, models.NewForbiddenError("You can only modify your own playlists")
	}
	removed, err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, models.NewNotFoundMessageError("Video not in playlist")
	}
	return s.playlistRepo.GetByID(ctx, playlistID)
}
