package repository

import (
	"context"
	"errors"
	"strings"

	"videotube/internal/cache"
	"videotube/internal/models"

	"gorm.io/gorm"
)

// VideoListParams captures the filtering, sorting and pagination knobs of the
// public video listing.
type VideoListParams struct {
	Query         string
	OwnerID       uint
	PublishedOnly bool
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	IncrementViews(ctx context.Context, id uint) error
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params VideoListParams) (*models.Page, error)
	ListByOwner(ctx context.Context, ownerID uint, includeUnpublished bool) ([]models.Video, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.Video, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	SumViewsByOwner(ctx context.Context, ownerID uint) (int64, error)
	AttachOwners(ctx context.Context, videos []models.Video) error
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository returns a new VideoRepository implementation.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	err := cache.Aside(ctx, cache.VideoKey(id), &video, cache.VideoTTL, func() error {
		if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Video", id)
			}
			return models.NewInternalError(err)
		}
		return r.attachOwners(ctx, []*models.Video{&video})
	})
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// IncrementViews bumps the view counter in place. Counting is best effort:
// concurrent fetches may coalesce through the cache without each adding a view.
func (r *videoRepository) IncrementViews(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, id)
	return nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, video.ID)
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Video{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Video", id)
	}
	cache.InvalidateVideo(ctx, id)
	return nil
}

// sortColumns whitelists client-supplied sort keys against real columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

func (r *videoRepository) List(ctx context.Context, params VideoListParams) (*models.Page, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&models.Video{})
	if params.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if params.OwnerID != 0 {
		query = query.Where("owner_id = ?", params.OwnerID)
	}
	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		direction = "ASC"
	}

	var videos []models.Video
	if err := query.
		Order(column + " " + direction).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.AttachOwners(ctx, videos); err != nil {
		return nil, err
	}
	return models.NewPage(videos, page, limit, total), nil
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID uint, includeUnpublished bool) ([]models.Video, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !includeUnpublished {
		query = query.Where("is_published = ?", true)
	}
	var videos []models.Video
	if err := query.Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.AttachOwners(ctx, videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// ListByIDs fetches videos by primary key without preserving input order.
// Callers that care about order (playlists) reorder the result themselves.
func (r *videoRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Video, error) {
	if len(ids) == 0 {
		return []models.Video{}, nil
	}
	var videos []models.Video
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.AttachOwners(ctx, videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// SumViewsByOwner totals views across a channel's videos. COALESCE keeps the
// zero-video channel at 0 instead of NULL.
func (r *videoRepository) SumViewsByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

// AttachOwners hydrates the owner projection for a batch of videos with a
// single query instead of one per row.
func (r *videoRepository) AttachOwners(ctx context.Context, videos []models.Video) error {
	refs := make([]*models.Video, len(videos))
	for i := range videos {
		refs[i] = &videos[i]
	}
	return r.attachOwners(ctx, refs)
}

func (r *videoRepository) attachOwners(ctx context.Context, videos []*models.Video) error {
	if len(videos) == 0 {
		return nil
	}
	ownerIDs := make([]uint, 0, len(videos))
	seen := make(map[uint]bool, len(videos))
	for _, v := range videos {
		if !seen[v.OwnerID] {
			seen[v.OwnerID] = true
			ownerIDs = append(ownerIDs, v.OwnerID)
		}
	}
	var owners []models.OwnerProjection
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id, username, full_name, avatar").
		Where("id IN ?", ownerIDs).
		Scan(&owners).Error; err != nil {
		return models.NewInternalError(err)
	}
	byID := make(map[uint]*models.OwnerProjection, len(owners))
	for i := range owners {
		byID[owners[i].ID] = &owners[i]
	}
	for _, v := range videos {
		v.OwnerInfo = byID[v.OwnerID]
	}
	return nil
}
