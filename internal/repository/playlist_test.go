package repository

import (
	"context"
	"testing"

	"videotube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistRepository_AddVideoPreservesOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db, NewVideoRepository(db))
	ctx := context.Background()

	owner := createTestUser(t, db)
	playlist := &models.Playlist{OwnerID: owner.ID, Name: "Watch later", Description: "queue"}
	require.NoError(t, repo.Create(ctx, playlist))

	first := createTestVideo(t, db, owner.ID)
	second := createTestVideo(t, db, owner.ID)
	third := createTestVideo(t, db, owner.ID)

	for _, v := range []*models.Video{first, second, third} {
		require.NoError(t, repo.AddVideo(ctx, playlist.ID, v.ID))
	}
	// Re-adding keeps the original slot.
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, first.ID))

	got, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	require.Len(t, got.Videos, 3)
	assert.Equal(t, first.ID, got.Videos[0].ID)
	assert.Equal(t, second.ID, got.Videos[1].ID)
	assert.Equal(t, third.ID, got.Videos[2].ID)
}

func TestPlaylistRepository_RemoveVideo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db, NewVideoRepository(db))
	ctx := context.Background()

	owner := createTestUser(t, db)
	playlist := &models.Playlist{OwnerID: owner.ID, Name: "Favorites"}
	require.NoError(t, repo.Create(ctx, playlist))

	video := createTestVideo(t, db, owner.ID)
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, video.ID))

	removed, err := repo.RemoveVideo(ctx, playlist.ID, video.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveVideo(ctx, playlist.ID, video.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	got, err := repo.GetByID(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Videos)
}

func TestPlaylistRepository_DeleteCascadesMembership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db, NewVideoRepository(db))
	ctx := context.Background()

	owner := createTestUser(t, db)
	playlist := &models.Playlist{OwnerID: owner.ID, Name: "Temp"}
	require.NoError(t, repo.Create(ctx, playlist))

	video := createTestVideo(t, db, owner.ID)
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, video.ID))

	require.NoError(t, repo.Delete(ctx, playlist.ID))

	_, err := repo.GetByID(ctx, playlist.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)

	var count int64
	require.NoError(t, db.Model(&models.PlaylistVideo{}).
		Where("playlist_id = ?", playlist.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPlaylistRepository_ListByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlaylistRepository(db, NewVideoRepository(db))
	ctx := context.Background()

	owner := createTestUser(t, db)
	other := createTestUser(t, db)

	require.NoError(t, repo.Create(ctx, &models.Playlist{OwnerID: owner.ID, Name: "A"}))
	require.NoError(t, repo.Create(ctx, &models.Playlist{OwnerID: owner.ID, Name: "B"}))
	require.NoError(t, repo.Create(ctx, &models.Playlist{OwnerID: other.ID, Name: "C"}))

	playlists, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, playlists, 2)
}
