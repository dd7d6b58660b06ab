package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"social-feed-api/internal/client"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// AuthHandler handles account and login HTTP requests
type AuthHandler struct {
	userService service.UserService
	storage     client.StorageClient
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService service.UserService, storage client.StorageClient, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		storage:     storage,
		logger:      logger,
	}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates an account and returns the user with an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration payload"
// @Success      201 {object} response.SuccessResponse{data=dto.AuthResponse}
// @Failure      400 {object} response.ErrorResponse "Validation failed"
// @Failure      409 {object} response.ErrorResponse "Email or username already in use"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates by username or email and returns an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login payload"
// @Success      200 {object} response.SuccessResponse{data=dto.AuthResponse}
// @Failure      401 {object} response.ErrorResponse "Invalid credentials"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetMe godoc
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      401 {object} response.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	result, err := h.userService.GetMe(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Changes name, username and/or profile image; omitted fields keep their value
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name formData string false "Display name"
// @Param        username formData string false "Unique username"
// @Param        image formData file false "Profile image"
// @Success      200 {object} response.SuccessResponse{data=dto.UserMutationResponse}
// @Failure      400 {object} response.ErrorResponse "Validation failed"
// @Failure      409 {object} response.ErrorResponse "Username already in use"
// @Router       /auth/update-profile [patch]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	imageKey, ok := h.stageProfileImage(c, userID)
	if !ok {
		return
	}

	result, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req, imageKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// stageProfileImage uploads the optional profile image file and returns its
// key; "" means the request carried no image
func (h *AuthHandler) stageProfileImage(c *gin.Context, userID uuid.UUID) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		// No file field means the image stays as it is
		return "", true
	}
	if !isImageFile(file) {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Only image files are allowed")
		return "", false
	}

	src, err := file.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read uploaded file")
		return "", false
	}
	defer src.Close()

	key := h.storage.GenerateImageKey(userID.String(), file.Filename)
	if _, err := h.storage.UploadFile(c.Request.Context(), key, src, file.Header.Get("Content-Type")); err != nil {
		h.logger.Error("Failed to stage profile image", zap.Error(err), zap.String("key", key))
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to upload image")
		return "", false
	}
	return key, true
}
