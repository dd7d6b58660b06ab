package dto

import (
	"time"

	"github.com/google/uuid"

	"social-feed-api/internal/domain"
)

// LikeResponse represents a single like with its liker preview
type LikeResponse struct {
	LikeID    uuid.UUID          `json:"likeId"`
	User      domain.UserPreview `json:"user"`
	CreatedAt time.Time          `json:"createdAt"`
}

// ToggleLikeResponse reports the outcome of a like toggle. Like is set only
// when the toggle added a like; Added distinguishes the two outcomes.
type ToggleLikeResponse struct {
	Message string        `json:"message"`
	Added   bool          `json:"added"`
	Like    *LikeResponse `json:"like,omitempty"`
}

// LikeCountResponse carries the full (untruncated) like count of a target
type LikeCountResponse struct {
	Count int64 `json:"count"`
}

// LikeListResponse is the paginated like listing for a post or comment
type LikeListResponse struct {
	Message string          `json:"message"`
	Likes   []*LikeResponse `json:"likes"`
	PageMeta
}
