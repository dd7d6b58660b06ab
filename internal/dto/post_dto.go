package dto

import (
	"time"

	"github.com/google/uuid"

	"social-feed-api/internal/domain"
)

// CreatePostRequest represents the request to create a new post.
// Images arrive as multipart files and are staged by the upload layer,
// so only the text content is bound here.
type CreatePostRequest struct {
	Content string `form:"content" json:"content" binding:"required,min=8"`
}

// EditPostContentRequest represents the request to replace a post's content
type EditPostContentRequest struct {
	Content string `json:"content" binding:"required,min=8"`
}

// DeletePostImagesRequest lists the image keys to remove from a post.
// Keys not present on the post are silently ignored.
type DeletePostImagesRequest struct {
	Images []string `json:"images" binding:"required,min=1,unique,dive,required"`
}

// PostResponse represents a post payload
type PostResponse struct {
	PostID    uuid.UUID          `json:"postId"`
	User      domain.UserPreview `json:"user"`
	Content   string             `json:"content"`
	Images    []string           `json:"images"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// PostMutationResponse wraps a mutated post with a human-readable message
type PostMutationResponse struct {
	Message string        `json:"message"`
	Post    *PostResponse `json:"post"`
}

// DeletedPostResponse carries the pre-deletion snapshot of a removed post
type DeletedPostResponse struct {
	Message     string        `json:"message"`
	DeletedPost *PostResponse `json:"deletedPost"`
}

// NewPostResponse converts a domain post to its response payload
func NewPostResponse(post *domain.Post) *PostResponse {
	return &PostResponse{
		PostID:    post.ID,
		User:      domain.UserPreview{UserID: post.UserID.String()},
		Content:   post.Content,
		Images:    post.ImageKeys(),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
