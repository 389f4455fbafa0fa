package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/v1/users/register.
// The request is multipart: account fields plus a required avatar image and
// an optional cover image.
func (s *Server) Register(c *fiber.Ctx) error {
	fullName := strings.TrimSpace(c.FormValue("fullName"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	username := strings.ToLower(strings.TrimSpace(c.FormValue("username")))
	password := c.FormValue("password")

	if fullName == "" || email == "" || username == "" || password == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Full name, email, username, and password are required"))
	}

	// Validate username format
	if err := validation.ValidateUsername(username); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	// Validate email format
	if err := validation.ValidateEmail(email); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	// Validate password strength
	if err := validation.ValidatePassword(password); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	// Check if user already exists
	existing, err := s.userRepo.GetByEmailOrUsername(c.Context(), email, username)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c,
			models.NewConflictError("User with this email or username already exists"))
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Avatar image is required"))
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	avatarURL, err := s.media.UploadFile(c.Context(), "avatars", avatarFile)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	coverURL := ""
	if coverFile, coverErr := c.FormFile("coverImage"); coverErr == nil && coverFile != nil {
		coverURL, err = s.media.UploadFile(c.Context(), "covers", coverFile)
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}
	}

	user := &models.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   string(hashedPassword),
		Avatar:     avatarURL,
		CoverImage: coverURL,
	}

	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, createErr)
	}

	return models.Respond(c, fiber.StatusCreated, user, "User registered successfully")
}

// Login handles POST /api/v1/users/login. Clients may sign in with either
// email or username.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if email == "" && username == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Email or username is required"))
	}

	user, err := s.userRepo.GetByEmailOrUsername(c.Context(), email, username)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	// Compare password
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	accessToken, refreshToken, err := s.issueTokenPair(c, user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "User logged in successfully")
}

// Logout handles POST /api/v1/users/logout. It clears the stored refresh
// token and revokes the presented access token via the jti blacklist.
func (s *Server) Logout(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	if err := s.userRepo.UpdateRefreshToken(c.Context(), userID, ""); err != nil {
		return models.RespondWithError(c, err)
	}

	if jti, ok := c.Locals("jti").(string); ok && jti != "" && s.redis != nil {
		// TTL matches the access token lifetime, after which the token has
		// expired anyway.
		if err := s.redis.Set(c.Context(), "blacklist:"+jti, "1", s.config.AccessTokenTTL).Err(); err != nil {
			middleware.Logger.Warn("failed to blacklist token", "error", err)
		}
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{}, "User logged out successfully")
}

// RefreshToken handles POST /api/v1/users/refresh-token. It verifies the
// presented refresh token against the stored one and rotates the pair.
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Refresh token is required"))
	}

	userID, err := s.parseRefreshToken(req.RefreshToken)
	if err != nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid or expired refresh token"))
	}

	user, err := s.userRepo.GetWithCredentials(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if user == nil || user.RefreshToken == "" || user.RefreshToken != req.RefreshToken {
		// A mismatch means the token was rotated or revoked.
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Refresh token is expired or already used"))
	}

	accessToken, refreshToken, err := s.issueTokenPair(c, user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Access token refreshed")
}

// issueTokenPair generates an access/refresh token pair and persists the
// refresh token so it can be matched (and rotated) on refresh.
func (s *Server) issueTokenPair(c *fiber.Ctx, userID uint, username string) (string, string, error) {
	accessToken, err := s.generateAccessToken(userID, username)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.generateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}
	if err := s.userRepo.UpdateRefreshToken(c.Context(), userID, refreshToken); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// generateAccessToken creates a short-lived JWT for the given user ID and username
func (s *Server) generateAccessToken(userID uint, username string) (string, error) {
	// Validate secret exists
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	// Subject is the user ID as a string; username is cached in the token so
	// logging middleware never needs a user lookup.
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(s.config.AccessTokenTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateRefreshToken creates a long-lived JWT carrying only the subject.
func (s *Server) generateRefreshToken(userID uint) (string, error) {
	if s.config.RefreshSecret == "" {
		return "", fmt.Errorf("refresh token secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(s.config.RefreshTokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.RefreshSecret))
}

// parseRefreshToken validates a refresh token's signature, issuer and
// audience and returns its subject.
func (s *Server) parseRefreshToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, fmt.Errorf("invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, fmt.Errorf("invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in token")
	}
	return uint(userID), nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
