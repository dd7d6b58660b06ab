package handler

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"social-feed-api/internal/client"
	"social-feed-api/internal/domain"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// PostHandler handles post HTTP requests. Image files are streamed to
// storage here before the service sees them; the service owns the
// compensating cleanup when a staged upload cannot be attached.
type PostHandler struct {
	postService service.PostService
	storage     client.StorageClient
	logger      *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService service.PostService, storage client.StorageClient, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		storage:     storage,
		logger:      logger,
	}
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post from multipart form data with up to 10 images
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        content formData string true "Post content (min 8 characters)"
// @Param        images formData file false "Image files"
// @Success      201 {object} response.SuccessResponse{data=dto.PostMutationResponse}
// @Failure      400 {object} response.ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	imageKeys, ok := h.stageImages(c, userID)
	if !ok {
		return
	}

	result, err := h.postService.CreatePost(c.Request.Context(), userID, &req, imageKeys)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID"
// @Success      200 {object} response.SuccessResponse{data=dto.PostResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /posts/{postId} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "postId")
	if !ok {
		return
	}

	result, err := h.postService.GetPost(c.Request.Context(), postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// EditPostContent godoc
// @Summary      Edit a post's content
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID"
// @Param        request body dto.EditPostContentRequest true "New content"
// @Success      200 {object} response.SuccessResponse{data=dto.PostMutationResponse}
// @Failure      403 {object} response.ErrorResponse "Not the author"
// @Failure      404 {object} response.ErrorResponse
// @Router       /posts/{postId} [patch]
func (h *PostHandler) EditPostContent(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId")
	if !ok {
		return
	}

	var req dto.EditPostContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.postService.EditPostContent(c.Request.Context(), userID, postID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// AddPostImages godoc
// @Summary      Add images to a post
// @Description  The combined image count must stay below 10
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID"
// @Param        images formData file true "Image files"
// @Success      200 {object} response.SuccessResponse{data=dto.PostMutationResponse}
// @Failure      400 {object} response.ErrorResponse "Image cap exceeded"
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /posts/{postId}/images [post]
func (h *PostHandler) AddPostImages(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId")
	if !ok {
		return
	}

	imageKeys, ok := h.stageImages(c, userID)
	if !ok {
		return
	}
	if len(imageKeys) == 0 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "At least one image is required")
		return
	}

	result, err := h.postService.AddPostImages(c.Request.Context(), userID, postID, imageKeys)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// DeletePostImages godoc
// @Summary      Delete images from a post
// @Description  Removes the listed image keys; keys not on the post are ignored
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID"
// @Param        request body dto.DeletePostImagesRequest true "Image keys to remove"
// @Success      200 {object} response.SuccessResponse{data=dto.PostMutationResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /posts/{postId}/images [delete]
func (h *PostHandler) DeletePostImages(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId")
	if !ok {
		return
	}

	var req dto.DeletePostImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.postService.DeletePostImages(c.Request.Context(), userID, postID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Removes the post with its comments, likes and stored images
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID"
// @Success      200 {object} response.SuccessResponse{data=dto.DeletedPostResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /posts/{postId} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId")
	if !ok {
		return
	}

	result, err := h.postService.DeletePost(c.Request.Context(), userID, postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// stageImages uploads the request's image files to storage and returns their
// keys. A failed upload rolls back the keys staged before it.
func (h *PostHandler) stageImages(c *gin.Context, userID uuid.UUID) ([]string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body means no images
		return nil, true
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, true
	}
	if len(files) > domain.MaxImagesCount {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Too many images in one request")
		return nil, false
	}

	keys := make([]string, 0, len(files))
	for _, file := range files {
		if !isImageFile(file) {
			h.unstage(c, keys)
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Only image files are allowed")
			return nil, false
		}

		src, err := file.Open()
		if err != nil {
			h.unstage(c, keys)
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read uploaded file")
			return nil, false
		}

		key := h.storage.GenerateImageKey(userID.String(), file.Filename)
		_, err = h.storage.UploadFile(c.Request.Context(), key, src, file.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			h.logger.Error("Failed to stage image", zap.Error(err), zap.String("key", key))
			h.unstage(c, keys)
			response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to upload image")
			return nil, false
		}
		keys = append(keys, key)
	}
	return keys, true
}

// unstage removes already-staged objects after a failed request
func (h *PostHandler) unstage(c *gin.Context, keys []string) {
	for _, key := range keys {
		if err := h.storage.DeleteFile(c.Request.Context(), key); err != nil {
			h.logger.Warn("Failed to delete staged image", zap.Error(err), zap.String("key", key))
		}
	}
}

// isImageFile accepts image content types only
func isImageFile(file *multipart.FileHeader) bool {
	return strings.HasPrefix(file.Header.Get("Content-Type"), "image/")
}
