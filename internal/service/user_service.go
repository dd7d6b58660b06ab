package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"social-feed-api/internal/client"
	"social-feed-api/internal/config"
	"social-feed-api/internal/domain"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
)

// UserService defines the interface for account and login business logic
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest, imageKey string) (*dto.UserMutationResponse, error)
}

// userServiceImpl is the implementation of UserService
type userServiceImpl struct {
	userRepo repository.UserRepository
	storage  client.StorageClient
	jwtCfg   config.JWTConfig
	logger   *zap.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, storage client.StorageClient, jwtCfg config.JWTConfig, logger *zap.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		storage:  storage,
		jwtCfg:   jwtCfg,
		logger:   logger,
	}
}

// Register creates a new account and logs it in
func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, response.NewAppError(response.ErrCodeValidation, "Passwords do not match", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create user", "")
	}

	user := &domain.User{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Password: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Email or username already in use", "")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create user", err.Error())
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", "")
	}

	return &dto.AuthResponse{
		Message:     "User registered successfully",
		User:        newUserResponse(user),
		AccessToken: token,
	}, nil
}

// Login authenticates by username or email and issues an access token
func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmailOrUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid credentials", "")
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to log in", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid credentials", "")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", "")
	}

	return &dto.AuthResponse{
		Message:     "Login successful",
		User:        newUserResponse(user),
		AccessToken: token,
	}, nil
}

// GetMe returns the authenticated user's own profile
func (s *userServiceImpl) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch user", err.Error())
	}
	return newUserResponse(user), nil
}

// UpdateProfile changes the caller's name, username and profile image. Empty
// request fields keep their current value; imageKey "" keeps the current
// image. A replaced image's old storage object is deleted after the update.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest, imageKey string) (*dto.UserMutationResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.cleanupStagedKey(imageKey)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		s.logger.Error("Failed to fetch user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update profile", err.Error())
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	oldImage := ""
	if imageKey != "" {
		oldImage = user.Image
		user.Image = imageKey
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.cleanupStagedKey(imageKey)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Username already in use", "")
		}
		s.logger.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update profile", err.Error())
	}

	if oldImage != "" {
		s.cleanupStagedKey(oldImage)
	}
	s.logger.Info("Profile updated", zap.String("user_id", userID.String()))

	return &dto.UserMutationResponse{
		Message: "Profile updated successfully",
		User:    newUserResponse(user),
	}, nil
}

// cleanupStagedKey deletes a storage object fire-and-forget; failures are
// logged, never escalated
func (s *userServiceImpl) cleanupStagedKey(key string) {
	if key == "" {
		return
	}
	if err := s.storage.DeleteFile(context.Background(), key); err != nil {
		s.logger.Warn("Failed to delete storage object",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// issueToken signs an HS256 access token for the user
func (s *userServiceImpl) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.jwtCfg.ExpiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

func newUserResponse(user *domain.User) *dto.UserResponse {
	return &dto.UserResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Name:      user.Name,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
	}
}
