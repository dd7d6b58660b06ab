package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/dto"
	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// FeedHandler handles enriched feed HTTP requests
type FeedHandler struct {
	feedService service.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// ListPosts godoc
// @Summary      List the feed
// @Description  Newest-first page of posts enriched with author, like and comment previews
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page (1-indexed)"
// @Param        limit query int false "Page size"
// @Success      200 {object} response.SuccessResponse{data=dto.FeedListResponse}
// @Router       /feed [get]
func (h *FeedHandler) ListPosts(c *gin.Context) {
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.feedService.ListPosts(c.Request.Context(), &q)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// ListUserPosts godoc
// @Summary      List one user's feed
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User ID"
// @Param        page query int false "Page (1-indexed)"
// @Param        limit query int false "Page size"
// @Success      200 {object} response.SuccessResponse{data=dto.FeedListResponse}
// @Failure      404 {object} response.ErrorResponse "User not found"
// @Router       /feed/user/{userId} [get]
func (h *FeedHandler) ListUserPosts(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.feedService.ListUserPosts(c.Request.Context(), userID, &q)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetPost godoc
// @Summary      Get one enriched post
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID"
// @Success      200 {object} response.SuccessResponse{data=dto.FeedPostResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /feed/{postId} [get]
func (h *FeedHandler) GetPost(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "postId")
	if !ok {
		return
	}

	result, err := h.feedService.GetPost(c.Request.Context(), postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
