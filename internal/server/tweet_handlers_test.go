package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"videotube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTweet(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()
		s, app, db := newTestServer(t)
		owner := createTestUser(t, db)

		req := jsonRequest(t, http.MethodPost, "/api/v1/tweets", map[string]string{
			"content": "shipping a new video this week",
		})
		req.Header.Set("Authorization", bearerToken(t, s, owner))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var stored models.Tweet
		require.NoError(t, db.Where("owner_id = ?", owner.ID).First(&stored).Error)
		assert.Equal(t, "shipping a new video this week", stored.Content)
	})

	t.Run("Too Long", func(t *testing.T) {
		t.Parallel()
		s, app, db := newTestServer(t)
		owner := createTestUser(t, db)

		req := jsonRequest(t, http.MethodPost, "/api/v1/tweets", map[string]string{
			"content": strings.Repeat("x", 501),
		})
		req.Header.Set("Authorization", bearerToken(t, s, owner))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetUserTweets(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	owner := createTestUser(t, db)
	require.NoError(t, db.Create(&models.Tweet{OwnerID: owner.ID, Content: "first"}).Error)
	require.NoError(t, db.Create(&models.Tweet{OwnerID: owner.ID, Content: "second"}).Error)

	target := fmt.Sprintf("/api/v1/tweets/user/%d", owner.ID)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdateTweet(t *testing.T) {
	t.Parallel()

	s, app, db := newTestServer(t)
	owner := createTestUser(t, db)
	intruder := createTestUser(t, db)
	tweet := &models.Tweet{OwnerID: owner.ID, Content: "draft"}
	require.NoError(t, db.Create(tweet).Error)

	target := fmt.Sprintf("/api/v1/tweets/%d", tweet.ID)

	req := jsonRequest(t, http.MethodPatch, target, map[string]string{"content": "stolen"})
	req.Header.Set("Authorization", bearerToken(t, s, intruder))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = jsonRequest(t, http.MethodPatch, target, map[string]string{"content": "final"})
	req.Header.Set("Authorization", bearerToken(t, s, owner))
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Tweet
	require.NoError(t, db.First(&stored, tweet.ID).Error)
	assert.Equal(t, "final", stored.Content)
}

func TestDeleteTweet(t *testing.T) {
	t.Parallel()

	s, app, db := newTestServer(t)
	owner := createTestUser(t, db)
	tweet := &models.Tweet{OwnerID: owner.ID, Content: "gone soon"}
	require.NoError(t, db.Create(tweet).Error)

	target := fmt.Sprintf("/api/v1/tweets/%d", tweet.ID)
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	req.Header.Set("Authorization", bearerToken(t, s, owner))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Tweet{}).Where("id = ?", tweet.ID).Count(&count).Error)
	assert.Zero(t, count)
}
