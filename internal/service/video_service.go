package service

import (
	"context"
	"mime/multipart"
	"strings"

	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/repository"
	"videotube/internal/storage"
)

const maxTitleLen = 200

// VideoService manages the video lifecycle: publishing, playback reads,
// metadata updates and deletion.
type VideoService struct {
	videoRepo   repository.VideoRepository
	historyRepo repository.HistoryRepository
	media       storage.MediaStore
}

type PublishVideoInput struct {
	OwnerID     uint
	Title       string
	Description string
	VideoFile   *multipart.FileHeader
	Thumbnail   *multipart.FileHeader
	Duration    float64
}

type UpdateVideoInput struct {
	UserID      uint
	VideoID     uint
	Title       string
	Description string
	Thumbnail   *multipart.FileHeader
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	historyRepo repository.HistoryRepository,
	media storage.MediaStore,
) *VideoService {
	return &VideoService{videoRepo: videoRepo, historyRepo: historyRepo, media: media}
}

func (s *VideoService) Publish(ctx context.Context, in PublishVideoInput) (*models.Video, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if in.VideoFile == nil {
		return nil, models.NewValidationError("Video file is required")
	}
	if in.Thumbnail == nil {
		return nil, models.NewValidationError("Thumbnail is required")
	}

	videoURL, err := s.media.UploadFile(ctx, "videos", in.VideoFile)
	if err != nil {
		return nil, err
	}
	thumbURL, err := s.media.UploadFile(ctx, "thumbnails", in.Thumbnail)
	if err != nil {
		return nil, err
	}

	video := &models.Video{
		OwnerID:     in.OwnerID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		VideoFile:   videoURL,
		Thumbnail:   thumbURL,
		Duration:    in.Duration,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	return s.videoRepo.GetByID(ctx, video.ID)
}

// Watch returns the video for playback. The read bumps the view counter and,
// for a signed-in viewer, records the watch in their history. Owners can
// watch their own drafts; everyone else only sees published videos.
func (s *VideoService) Watch(ctx context.Context, videoID, viewerID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, models.NewNotFoundError("Video", videoID)
	}

	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		middleware.Logger.Warn("failed to increment views", "video_id", videoID, "error", err)
	} else {
		video.Views++
	}

	if viewerID != 0 {
		if err := s.historyRepo.Record(ctx, viewerID, videoID); err != nil {
			middleware.Logger.Warn("failed to record watch history", "video_id", videoID, "user_id", viewerID, "error", err)
		}
	}
	return video, nil
}

// Get returns the video without playback side effects.
func (s *VideoService) Get(ctx context.Context, videoID uint) (*models.Video, error) {
	return s.videoRepo.GetByID(ctx, videoID)
}

func (s *VideoService) List(ctx context.Context, params repository.VideoListParams) (*models.Page, error) {
	return s.videoRepo.List(ctx, params)
}

func (s *VideoService) Update(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own videos")
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		if len(title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		video.Title = title
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		video.Description = desc
	}
	if in.Thumbnail != nil {
		thumbURL, err := s.media.UploadFile(ctx, "thumbnails", in.Thumbnail)
		if err != nil {
			return nil, err
		}
		old := video.Thumbnail
		video.Thumbnail = thumbURL
		if err := s.videoRepo.Update(ctx, video); err != nil {
			return nil, err
		}
		s.removeMedia(ctx, old)
		return s.videoRepo.GetByID(ctx, video.ID)
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return s.videoRepo.GetByID(ctx, video.ID)
}

func (s *VideoService) Delete(ctx context.Context, userID, videoID uint) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own videos")
	}
	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return err
	}
	s.removeMedia(ctx, video.VideoFile)
	s.removeMedia(ctx, video.Thumbnail)
	return nil
}

// TogglePublish flips the video's publish flag and returns the new state.
func (s *VideoService) TogglePublish(ctx context.Context, userID, videoID uint) (bool, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return false, err
	}
	if video.OwnerID != userID {
		return false, models.NewForbiddenError("You can only modify your own videos")
	}
	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return false, err
	}
	return video.IsPublished, nil
}

// WatchHistory lists the user's watched videos, most recent first.
func (s *VideoService) WatchHistory(ctx context.Context, userID uint) ([]models.Video, error) {
	return s.historyRepo.List(ctx, userID)
}

// Stored objects are cleanup, not correctness: a failed removal only leaks
// an orphan in the bucket.
func (s *VideoService) removeMedia(ctx context.Context, url string) {
	if s.media == nil || url == "" {
		return
	}
	if err := s.media.Remove(ctx, url); err != nil {
		middleware.Logger.Warn("failed to remove stored object", "url", url, "error", err)
	}
}
