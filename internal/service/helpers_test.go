package service

import (
	"context"
	"mime/multipart"
	"testing"

	"videotube/internal/models"
	"videotube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertStatusError(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, status, appErr.Status)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn              func(context.Context, uint) (*models.User, error)
	getWithCredentialsFn   func(context.Context, uint) (*models.User, error)
	getByEmailFn           func(context.Context, string) (*models.User, error)
	getByUsernameFn        func(context.Context, string) (*models.User, error)
	getByEmailOrUsernameFn func(context.Context, string, string) (*models.User, error)
	resolveChannelFn       func(context.Context, string) (*models.User, error)
	createFn               func(context.Context, *models.User) error
	updateFn               func(context.Context, *models.User) error
	updateRefreshTokenFn   func(context.Context, uint, string) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetWithCredentials(ctx context.Context, id uint) (*models.User, error) {
	return s.getWithCredentialsFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	return s.getByEmailOrUsernameFn(ctx, email, username)
}
func (s *userRepoStub) ResolveChannel(ctx context.Context, identifier string) (*models.User, error) {
	return s.resolveChannelFn(ctx, identifier)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateRefreshToken(ctx context.Context, id uint, token string) error {
	return s.updateRefreshTokenFn(ctx, id, token)
}

func noopUserRepo() *userRepoStub {
	user := &models.User{ID: 1, Username: "someone"}
	return &userRepoStub{
		getByIDFn:              func(context.Context, uint) (*models.User, error) { return user, nil },
		getWithCredentialsFn:   func(context.Context, uint) (*models.User, error) { return user, nil },
		getByEmailFn:           func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:        func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailOrUsernameFn: func(context.Context, string, string) (*models.User, error) { return nil, nil },
		resolveChannelFn:       func(context.Context, string) (*models.User, error) { return user, nil },
		createFn:               func(context.Context, *models.User) error { return nil },
		updateFn:               func(context.Context, *models.User) error { return nil },
		updateRefreshTokenFn:   func(context.Context, uint, string) error { return nil },
	}
}

// subRepoStub is a stub for repository.SubscriptionRepository.
type subRepoStub struct {
	countSubscribersFn  func(context.Context, uint) (int64, error)
	countSubscribedToFn func(context.Context, uint) (int64, error)
	existsFn            func(context.Context, uint, uint) (bool, error)
	createFn            func(context.Context, uint, uint) (bool, error)
	deleteFn            func(context.Context, uint, uint) (bool, error)
	listSubscribersFn   func(context.Context, uint) ([]models.OwnerProjection, error)
	listChannelsFn      func(context.Context, uint) ([]models.OwnerProjection, error)
}

func (s *subRepoStub) CountSubscribers(ctx context.Context, channelID uint) (int64, error) {
	return s.countSubscribersFn(ctx, channelID)
}
func (s *subRepoStub) CountSubscribedTo(ctx context.Context, subscriberID uint) (int64, error) {
	return s.countSubscribedToFn(ctx, subscriberID)
}
func (s *subRepoStub) Exists(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.existsFn(ctx, subscriberID, channelID)
}
func (s *subRepoStub) Create(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.createFn(ctx, subscriberID, channelID)
}
func (s *subRepoStub) Delete(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.deleteFn(ctx, subscriberID, channelID)
}
func (s *subRepoStub) ListSubscribers(ctx context.Context, channelID uint) ([]models.OwnerProjection, error) {
	return s.listSubscribersFn(ctx, channelID)
}
func (s *subRepoStub) ListChannels(ctx context.Context, subscriberID uint) ([]models.OwnerProjection, error) {
	return s.listChannelsFn(ctx, subscriberID)
}

func noopSubRepo() *subRepoStub {
	return &subRepoStub{
		countSubscribersFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		countSubscribedToFn: func(context.Context, uint) (int64, error) { return 0, nil },
		existsFn:            func(context.Context, uint, uint) (bool, error) { return false, nil },
		createFn:            func(context.Context, uint, uint) (bool, error) { return true, nil },
		deleteFn:            func(context.Context, uint, uint) (bool, error) { return false, nil },
		listSubscribersFn:   func(context.Context, uint) ([]models.OwnerProjection, error) { return nil, nil },
		listChannelsFn:      func(context.Context, uint) ([]models.OwnerProjection, error) { return nil, nil },
	}
}

// videoRepoStub is a stub for repository.VideoRepository.
type videoRepoStub struct {
	createFn         func(context.Context, *models.Video) error
	getByIDFn        func(context.Context, uint) (*models.Video, error)
	incrementViewsFn func(context.Context, uint) error
	updateFn         func(context.Context, *models.Video) error
	deleteFn         func(context.Context, uint) error
	listFn           func(context.Context, repository.VideoListParams) (*models.Page, error)
	listByOwnerFn    func(context.Context, uint, bool) ([]models.Video, error)
	listByIDsFn      func(context.Context, []uint) ([]models.Video, error)
	countByOwnerFn   func(context.Context, uint) (int64, error)
	sumViewsFn       func(context.Context, uint) (int64, error)
}

func (s *videoRepoStub) Create(ctx context.Context, video *models.Video) error {
	return s.createFn(ctx, video)
}
func (s *videoRepoStub) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	return s.getByIDFn(ctx, id)
}
func (s *videoRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *videoRepoStub) Update(ctx context.Context, video *models.Video) error {
	return s.updateFn(ctx, video)
}
func (s *videoRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *videoRepoStub) List(ctx context.Context, params repository.VideoListParams) (*models.Page, error) {
	return s.listFn(ctx, params)
}
func (s *videoRepoStub) ListByOwner(ctx context.Context, ownerID uint, includeUnpublished bool) ([]models.Video, error) {
	return s.listByOwnerFn(ctx, ownerID, includeUnpublished)
}
func (s *videoRepoStub) ListByIDs(ctx context.Context, ids []uint) ([]models.Video, error) {
	return s.listByIDsFn(ctx, ids)
}
func (s *videoRepoStub) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	return s.countByOwnerFn(ctx, ownerID)
}
func (s *videoRepoStub) SumViewsByOwner(ctx context.Context, ownerID uint) (int64, error) {
	return s.sumViewsFn(ctx, ownerID)
}
func (s *videoRepoStub) AttachOwners(context.Context, []models.Video) error { return nil }

func noopVideoRepo() *videoRepoStub {
	return &videoRepoStub{
		createFn: func(context.Context, *models.Video) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Video, error) {
			return &models.Video{ID: id, OwnerID: 1, IsPublished: true}, nil
		},
		incrementViewsFn: func(context.Context, uint) error { return nil },
		updateFn:         func(context.Context, *models.Video) error { return nil },
		deleteFn:         func(context.Context, uint) error { return nil },
		listFn: func(context.Context, repository.VideoListParams) (*models.Page, error) {
			return &models.Page{}, nil
		},
		listByOwnerFn:  func(context.Context, uint, bool) ([]models.Video, error) { return nil, nil },
		listByIDsFn:    func(context.Context, []uint) ([]models.Video, error) { return nil, nil },
		countByOwnerFn: func(context.Context, uint) (int64, error) { return 0, nil },
		sumViewsFn:     func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	createFn          func(context.Context, uint, models.LikeTarget, uint) (bool, error)
	deleteFn          func(context.Context, uint, models.LikeTarget, uint) (bool, error)
	existsFn          func(context.Context, uint, models.LikeTarget, uint) (bool, error)
	countForTargetFn  func(context.Context, models.LikeTarget, uint) (int64, error)
	countForChannelFn func(context.Context, uint) (int64, error)
	listLikedVideosFn func(context.Context, uint) ([]models.Video, error)
}

func (s *likeRepoStub) Create(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error) {
	return s.createFn(ctx, userID, targetType, targetID)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error) {
	return s.deleteFn(ctx, userID, targetType, targetID)
}
func (s *likeRepoStub) Exists(ctx context.Context, userID uint, targetType models.LikeTarget, targetID uint) (bool, error) {
	return s.existsFn(ctx, userID, targetType, targetID)
}
func (s *likeRepoStub) CountForTarget(ctx context.Context, targetType models.LikeTarget, targetID uint) (int64, error) {
	return s.countForTargetFn(ctx, targetType, targetID)
}
func (s *likeRepoStub) CountForChannelVideos(ctx context.Context, channelID uint) (int64, error) {
	return s.countForChannelFn(ctx, channelID)
}
func (s *likeRepoStub) ListLikedVideos(ctx context.Context, userID uint) ([]models.Video, error) {
	return s.listLikedVideosFn(ctx, userID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn:          func(context.Context, uint, models.LikeTarget, uint) (bool, error) { return true, nil },
		deleteFn:          func(context.Context, uint, models.LikeTarget, uint) (bool, error) { return false, nil },
		existsFn:          func(context.Context, uint, models.LikeTarget, uint) (bool, error) { return false, nil },
		countForTargetFn:  func(context.Context, models.LikeTarget, uint) (int64, error) { return 0, nil },
		countForChannelFn: func(context.Context, uint) (int64, error) { return 0, nil },
		listLikedVideosFn: func(context.Context, uint) ([]models.Video, error) { return nil, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
	listByVideoFn func(context.Context, uint, int, int) (*models.Page, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) ListByVideo(ctx context.Context, videoID uint, page, limit int) (*models.Page, error) {
	return s.listByVideoFn(ctx, videoID, page, limit)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, OwnerID: 1}, nil
		},
		updateFn:      func(context.Context, *models.Comment) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
		listByVideoFn: func(context.Context, uint, int, int) (*models.Page, error) { return &models.Page{}, nil },
	}
}

// tweetRepoStub is a stub for repository.TweetRepository.
type tweetRepoStub struct {
	createFn      func(context.Context, *models.Tweet) error
	getByIDFn     func(context.Context, uint) (*models.Tweet, error)
	updateFn      func(context.Context, *models.Tweet) error
	deleteFn      func(context.Context, uint) error
	listByOwnerFn func(context.Context, uint) ([]models.Tweet, error)
}

func (s *tweetRepoStub) Create(ctx context.Context, tweet *models.Tweet) error {
	return s.createFn(ctx, tweet)
}
func (s *tweetRepoStub) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tweetRepoStub) Update(ctx context.Context, tweet *models.Tweet) error {
	return s.updateFn(ctx, tweet)
}
func (s *tweetRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *tweetRepoStub) ListByOwner(ctx context.Context, ownerID uint) ([]models.Tweet, error) {
	return s.listByOwnerFn(ctx, ownerID)
}

func noopTweetRepo() *tweetRepoStub {
	return &tweetRepoStub{
		createFn: func(context.Context, *models.Tweet) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Tweet, error) {
			return &models.Tweet{ID: id, OwnerID: 1}, nil
		},
		updateFn:      func(context.Context, *models.Tweet) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
		listByOwnerFn: func(context.Context, uint) ([]models.Tweet, error) { return nil, nil },
	}
}

// playlistRepoStub is a stub for repository.PlaylistRepository.
type playlistRepoStub struct {
	createFn      func(context.Context, *models.Playlist) error
	getByIDFn     func(context.Context, uint) (*models.Playlist, error)
	updateFn      func(context.Context, *models.Playlist) error
	deleteFn      func(context.Context, uint) error
	listByOwnerFn func(context.Context, uint) ([]models.Playlist, error)
	addVideoFn    func(context.Context, uint, uint) error
	removeVideoFn func(context.Context, uint, uint) (bool, error)
}

func (s *playlistRepoStub) Create(ctx context.Context, playlist *models.Playlist) error {
	return s.createFn(ctx, playlist)
}
func (s *playlistRepoStub) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	return s.getByIDFn(ctx, id)
}
func (s *playlistRepoStub) Update(ctx context.Context, playlist *models.Playlist) error {
	return s.updateFn(ctx, playlist)
}
func (s *playlistRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *playlistRepoStub) ListByOwner(ctx context.Context, ownerID uint) ([]models.Playlist, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *playlistRepoStub) AddVideo(ctx context.Context, playlistID, videoID uint) error {
	return s.addVideoFn(ctx, playlistID, videoID)
}
func (s *playlistRepoStub) RemoveVideo(ctx context.Context, playlistID, videoID uint) (bool, error) {
	return s.removeVideoFn(ctx, playlistID, videoID)
}

func noopPlaylistRepo() *playlistRepoStub {
	return &playlistRepoStub{
		createFn: func(context.Context, *models.Playlist) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Playlist, error) {
			return &models.Playlist{ID: id, OwnerID: 1}, nil
		},
		updateFn:      func(context.Context, *models.Playlist) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
		listByOwnerFn: func(context.Context, uint) ([]models.Playlist, error) { return nil, nil },
		addVideoFn:    func(context.Context, uint, uint) error { return nil },
		removeVideoFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
	}
}

// historyRepoStub is a stub for repository.HistoryRepository.
type historyRepoStub struct {
	recordFn func(context.Context, uint, uint) error
	listFn   func(context.Context, uint) ([]models.Video, error)
}

func (s *historyRepoStub) Record(ctx context.Context, userID, videoID uint) error {
	return s.recordFn(ctx, userID, videoID)
}
func (s *historyRepoStub) List(ctx context.Context, userID uint) ([]models.Video, error) {
	return s.listFn(ctx, userID)
}

func noopHistoryRepo() *historyRepoStub {
	return &historyRepoStub{
		recordFn: func(context.Context, uint, uint) error { return nil },
		listFn:   func(context.Context, uint) ([]models.Video, error) { return nil, nil },
	}
}

// mediaStoreStub is a stub for storage.MediaStore.
type mediaStoreStub struct {
	uploadFn func(context.Context, string, *multipart.FileHeader) (string, error)
	removeFn func(context.Context, string) error
}

func (s *mediaStoreStub) UploadFile(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	return s.uploadFn(ctx, folder, file)
}
func (s *mediaStoreStub) Remove(ctx context.Context, url string) error {
	return s.removeFn(ctx, url)
}

func noopMediaStore() *mediaStoreStub {
	return &mediaStoreStub{
		uploadFn: func(_ context.Context, folder string, _ *multipart.FileHeader) (string, error) {
			return "https://cdn.example.com/" + folder + "/object", nil
		},
		removeFn: func(context.Context, string) error { return nil },
	}
}
