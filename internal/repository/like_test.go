package repository

import (
	"context"
	"testing"

	"videotube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_CreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db, NewVideoRepository(db))
	ctx := context.Background()

	user := createTestUser(t, db)
	video := createTestVideo(t, db, user.ID)

	inserted, err := repo.Create(ctx, user.ID, models.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Create(ctx, user.ID, models.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := repo.CountForTarget(ctx, models.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeRepository_TargetTypesAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db, NewVideoRepository(db))
	ctx := context.Background()

	user := createTestUser(t, db)

	// The same numeric ID under different target types is two distinct edges.
	_, err := repo.Create(ctx, user.ID, models.LikeTargetVideo, 7)
	require.NoError(t, err)
	_, err = repo.Create(ctx, user.ID, models.LikeTargetComment, 7)
	require.NoError(t, err)

	exists, err := repo.Exists(ctx, user.ID, models.LikeTargetTweet, 7)
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err := repo.Delete(ctx, user.ID, models.LikeTargetComment, 7)
	require.NoError(t, err)
	assert.True(t, deleted)

	exists, err = repo.Exists(ctx, user.ID, models.LikeTargetVideo, 7)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLikeRepository_CountForChannelVideos(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db, NewVideoRepository(db))
	ctx := context.Background()

	channel := createTestUser(t, db)
	other := createTestUser(t, db)
	fanA := createTestUser(t, db)
	fanB := createTestUser(t, db)

	mine := createTestVideo(t, db, channel.ID)
	theirs := createTestVideo(t, db, other.ID)

	for _, fan := range []uint{fanA.ID, fanB.ID} {
		_, err := repo.Create(ctx, fan, models.LikeTargetVideo, mine.ID)
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, fanA.ID, models.LikeTargetVideo, theirs.ID)
	require.NoError(t, err)
	// Comment likes never count toward the channel's video total.
	_, err = repo.Create(ctx, fanA.ID, models.LikeTargetComment, 1)
	require.NoError(t, err)

	count, err := repo.CountForChannelVideos(ctx, channel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLikeRepository_ListLikedVideos(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db, NewVideoRepository(db))
	ctx := context.Background()

	owner := createTestUser(t, db)
	fan := createTestUser(t, db)

	published := createTestVideo(t, db, owner.ID)
	draft := createTestVideo(t, db, owner.ID)
	require.NoError(t, db.Model(draft).Update("is_published", false).Error)

	for _, id := range []uint{published.ID, draft.ID} {
		_, err := repo.Create(ctx, fan.ID, models.LikeTargetVideo, id)
		require.NoError(t, err)
	}

	videos, err := repo.ListLikedVideos(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, published.ID, videos[0].ID)
	require.NotNil(t, videos[0].OwnerInfo)
	assert.Equal(t, owner.Username, videos[0].OwnerInfo.Username)
}
