package repository

import (
	"context"
	"testing"

	"videotube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db)
	video := createTestVideo(t, db, owner.ID)

	comment := &models.Comment{VideoID: video.ID, OwnerID: owner.ID, Content: "First!"}
	require.NoError(t, repo.Create(ctx, comment))
	require.NotZero(t, comment.ID)

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "First!", got.Content)

	got.Content = "Edited"
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Content)

	require.NoError(t, repo.Delete(ctx, comment.ID))
	_, err = repo.GetByID(ctx, comment.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestCommentRepository_ListByVideo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db)
	video := createTestVideo(t, db, owner.ID)
	other := createTestVideo(t, db, owner.ID)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Comment{
			VideoID: video.ID, OwnerID: owner.ID, Content: "hello",
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.Comment{
		VideoID: other.ID, OwnerID: owner.ID, Content: "elsewhere",
	}))

	page, err := repo.ListByVideo(ctx, video.ID, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalDocs)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNextPage)

	comments := page.Docs.([]models.Comment)
	require.Len(t, comments, 3)
	require.NotNil(t, comments[0].OwnerInfo)
	assert.Equal(t, owner.Username, comments[0].OwnerInfo.Username)

	// Defaults kick in for nonsense pagination values.
	page, err = repo.ListByVideo(ctx, video.ID, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
}
