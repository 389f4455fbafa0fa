package service

import (
	"context"
	"mime/multipart"
	"strings"

	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/repository"
	"videotube/internal/storage"
	"videotube/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService manages account details after signup; credential issuance
// stays in the HTTP layer.
type UserService struct {
	userRepo repository.UserRepository
	media    storage.MediaStore
}

type UpdateAccountInput struct {
	UserID   uint
	FullName string
	Email    string
}

func NewUserService(userRepo repository.UserRepository, media storage.MediaStore) *UserService {
	return &UserService{userRepo: userRepo, media: media}
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateAccount changes the user's display name and email. Blank fields keep
// their current value.
func (s *UserService) UpdateAccount(ctx context.Context, in UpdateAccountInput) (*models.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(in.Email)
	if fullName == "" && email == "" {
		return nil, models.NewValidationError("Full name or email is required")
	}

	user, err := s.userRepo.GetWithCredentials(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if fullName != "" {
		user.FullName = fullName
	}
	if email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = email
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before setting the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetWithCredentials(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// UpdateAvatar replaces the user's avatar image.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (*models.User, error) {
	return s.updateImage(ctx, userID, file, "avatars", func(u *models.User, url string) string {
		old := u.Avatar
		u.Avatar = url
		return old
	})
}

// UpdateCoverImage replaces the user's cover image.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID uint, file *multipart.FileHeader) (*models.User, error) {
	return s.updateImage(ctx, userID, file, "covers", func(u *models.User, url string) string {
		old := u.CoverImage
		u.CoverImage = url
		return old
	})
}

func (s *UserService) updateImage(ctx context.Context, userID uint, file *multipart.FileHeader, folder string, set func(*models.User, string) string) (*models.User, error) {
	if file == nil {
		return nil, models.NewValidationError("Image file is required")
	}

	user, err := s.userRepo.GetWithCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := s.media.UploadFile(ctx, folder, file)
	if err != nil {
		return nil, err
	}

	old := set(user, url)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if old != "" {
		if err := s.media.Remove(ctx, old); err != nil {
			middleware.Logger.Warn("failed to remove stored object", "url", old, "error", err)
		}
	}
	return user, nil
}
