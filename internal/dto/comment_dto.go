package dto

import (
	"time"

	"github.com/google/uuid"

	"social-feed-api/internal/domain"
)

// CreateCommentRequest represents the request body shared by top-level
// comments, replies and comment edits
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=8,max=200"`
}

// CommentResponse represents a comment payload with its author preview
type CommentResponse struct {
	CommentID       uuid.UUID          `json:"commentId"`
	PostID          uuid.UUID          `json:"postId"`
	ParentCommentID *uuid.UUID         `json:"parentCommentId,omitempty"`
	User            domain.UserPreview `json:"user"`
	Content         string             `json:"content"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// CommentMutationResponse wraps a created or edited comment
type CommentMutationResponse struct {
	Message string           `json:"message"`
	Comment *CommentResponse `json:"comment"`
}

// DeletedCommentResponse carries the pre-deletion snapshot of a removed comment
type DeletedCommentResponse struct {
	Message        string           `json:"message"`
	DeletedComment *CommentResponse `json:"deletedComment"`
}

// CommentListResponse lists top-level comments of a post
type CommentListResponse struct {
	Comments []*CommentResponse `json:"comments"`
}

// ReplyListResponse lists direct replies of a comment
type ReplyListResponse struct {
	Replies []*CommentResponse `json:"replies"`
}

// NewCommentResponse converts a domain comment to its response payload
func NewCommentResponse(comment *domain.Comment) *CommentResponse {
	return &CommentResponse{
		CommentID:       comment.ID,
		PostID:          comment.PostID,
		ParentCommentID: comment.ParentCommentID,
		User:            domain.UserPreview{UserID: comment.UserID.String()},
		Content:         comment.Content,
		CreatedAt:       comment.CreatedAt,
		UpdatedAt:       comment.UpdatedAt,
	}
}
