package repository

import (
	"context"
	"regexp"
	"testing"

	"videotube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email"}).
					AddRow(1, "testuser", "test@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "testuser", Email: "test@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			user, err := repo.GetByID(ctx, tt.userID)
			if tt.expectedError {
				require.Error(t, err)
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, 404, appErr.Status)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedUser.ID, user.ID)
				assert.Equal(t, tt.expectedUser.Username, user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail_NotFoundIsNil(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WithArgs("missing@example.com", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByEmail(ctx, "missing@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Username: "MixedCase",
		Email:    "new@example.com",
		FullName: "New User",
		Password: "hash",
		Avatar:   "https://cdn.example.com/a.png",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, "mixedcase", user.Username, "usernames are stored lowercased")

	// Duplicate email surfaces as a conflict, not an internal error.
	dup := &models.User{
		Username: "other",
		Email:    "new@example.com",
		FullName: "Other",
		Password: "hash",
		Avatar:   "https://cdn.example.com/b.png",
	}
	err := repo.Create(ctx, dup)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Status)
}

func TestUserRepository_ResolveChannel(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)
	require.NoError(t, db.Model(user).Update("username", "channelguy").Error)

	tests := []struct {
		name       string
		identifier string
		wantID     uint
		wantStatus int
	}{
		{name: "ByUsername", identifier: "channelguy", wantID: user.ID},
		{name: "ByUsernameCaseFolded", identifier: "ChannelGuy", wantID: user.ID},
		{name: "ByUsernameTrimmed", identifier: "  channelguy  ", wantID: user.ID},
		{name: "ByNumericID", identifier: "1", wantID: user.ID},
		{name: "Unknown", identifier: "nobody", wantStatus: 404},
		{name: "Blank", identifier: "   ", wantStatus: 400},
		// A numeric identifier too large for an ID must not wrap around
		// onto an existing user.
		{name: "OverflowingID", identifier: "18446744073709551617", wantStatus: 404},
		{name: "LeadingPlus", identifier: "+1", wantStatus: 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ResolveChannel(ctx, tt.identifier)
			if tt.wantStatus != 0 {
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantStatus, appErr.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestUserRepository_UpdateRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)

	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, "new-token"))

	got, err := repo.GetWithCredentials(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-token", got.RefreshToken)

	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, ""))
	got, err = repo.GetWithCredentials(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RefreshToken)
}
