package dto

import (
	"time"

	"github.com/google/uuid"

	"social-feed-api/internal/domain"
)

// FeedPostResponse is a post enriched with author, like and comment previews.
// The preview slices are newest-first prefixes of the full related sets;
// TotalLikes and TotalComments always count the untruncated sets.
type FeedPostResponse struct {
	PostID        uuid.UUID          `json:"postId"`
	User          domain.UserPreview `json:"user"`
	Content       string             `json:"content"`
	Images        []string           `json:"images"`
	Likes         []*LikeResponse    `json:"likes"`
	Comments      []*CommentResponse `json:"comments"`
	TotalLikes    int64              `json:"totalLikes"`
	TotalComments int64              `json:"totalComments"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// FeedListResponse is a paginated page of enriched posts
type FeedListResponse struct {
	Posts []*FeedPostResponse `json:"posts"`
	PageMeta
}
