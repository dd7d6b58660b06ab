package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/dto"
	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID"
// @Param        request body dto.CreateCommentRequest true "Comment content (8-200 characters)"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentMutationResponse}
// @Failure      404 {object} response.ErrorResponse "Post not found"
// @Router       /comments/post/{postId} [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(c, "postId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.commentService.CreateComment(c.Request.Context(), userID, postID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// CreateReply godoc
// @Summary      Reply to a comment
// @Description  The reply is attached to the parent comment's post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Parent comment ID"
// @Param        request body dto.CreateCommentRequest true "Reply content (8-200 characters)"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentMutationResponse}
// @Failure      400 {object} response.ErrorResponse "Parent is itself a reply"
// @Failure      404 {object} response.ErrorResponse "Parent comment not found"
// @Router       /comments/{commentId}/replies [post]
func (h *CommentHandler) CreateReply(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.commentService.CreateReply(c.Request.Context(), userID, commentID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// GetComment godoc
// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /comments/{commentId} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	result, err := h.commentService.GetComment(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// EditComment godoc
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Param        request body dto.CreateCommentRequest true "New content"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentMutationResponse}
// @Failure      403 {object} response.ErrorResponse "Not the author"
// @Failure      404 {object} response.ErrorResponse
// @Router       /comments/{commentId} [patch]
func (h *CommentHandler) EditComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.commentService.EditComment(c.Request.Context(), userID, commentID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetPostComments godoc
// @Summary      List a post's top-level comments
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        postId path string true "Post ID"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentListResponse}
// @Failure      404 {object} response.ErrorResponse "Post not found"
// @Router       /comments/post/{postId} [get]
func (h *CommentHandler) GetPostComments(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "postId")
	if !ok {
		return
	}

	result, err := h.commentService.GetPostComments(c.Request.Context(), postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetCommentReplies godoc
// @Summary      List a comment's replies
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Success      200 {object} response.SuccessResponse{data=dto.ReplyListResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /comments/{commentId}/replies [get]
func (h *CommentHandler) GetCommentReplies(c *gin.Context) {
	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	result, err := h.commentService.GetCommentReplies(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Removes the comment together with its replies and their likes
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Success      200 {object} response.SuccessResponse{data=dto.DeletedCommentResponse}
// @Failure      403 {object} response.ErrorResponse "Not the author"
// @Failure      404 {object} response.ErrorResponse
// @Router       /comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	result, err := h.commentService.DeleteComment(c.Request.Context(), userID, commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
