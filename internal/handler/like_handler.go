package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/dto"
	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// LikeHandler handles like HTTP requests for posts and comments
type LikeHandler struct {
	likeService service.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// TogglePostLike godoc
// @Summary      Toggle a like on a post
// @Description  Adds the like when absent, removes it when present
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID"
// @Success      200 {object} response.SuccessResponse{data=dto.ToggleLikeResponse}
// @Failure      404 {object} response.ErrorResponse "Post not found"
// @Router       /likes/post/{postId} [post]
func (h *LikeHandler) TogglePostLike(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId")
	if !ok {
		return
	}

	result, err := h.likeService.TogglePostLike(c.Request.Context(), userID, postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// ToggleCommentLike godoc
// @Summary      Toggle a like on a comment
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Success      200 {object} response.SuccessResponse{data=dto.ToggleLikeResponse}
// @Failure      404 {object} response.ErrorResponse "Comment not found"
// @Router       /likes/comment/{commentId} [post]
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	result, err := h.likeService.ToggleCommentLike(c.Request.Context(), userID, commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetPostLikesCount godoc
// @Summary      Count a post's likes
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeCountResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /likes/post/{postId}/count [get]
func (h *LikeHandler) GetPostLikesCount(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "postId")
	if !ok {
		return
	}

	result, err := h.likeService.GetPostLikesCount(c.Request.Context(), postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetCommentLikesCount godoc
// @Summary      Count a comment's likes
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeCountResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /likes/comment/{commentId}/count [get]
func (h *LikeHandler) GetCommentLikesCount(c *gin.Context) {
	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	result, err := h.likeService.GetCommentLikesCount(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetPostLikes godoc
// @Summary      List a post's likes
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID"
// @Param        page query int false "Page (1-indexed)"
// @Param        limit query int false "Page size"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeListResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /likes/post/{postId} [get]
func (h *LikeHandler) GetPostLikes(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "postId")
	if !ok {
		return
	}
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.likeService.GetPostLikes(c.Request.Context(), postID, &q)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetCommentLikes godoc
// @Summary      List a comment's likes
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Param        page query int false "Page (1-indexed)"
// @Param        limit query int false "Page size"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeListResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /likes/comment/{commentId} [get]
func (h *LikeHandler) GetCommentLikes(c *gin.Context) {
	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.likeService.GetCommentLikes(c.Request.Context(), commentID, &q)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
