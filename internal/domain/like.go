package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostLike marks that a user likes a post. The composite unique index keeps
// at most one row per (user, post) pair; the toggle relies on it instead of a
// read-then-write check. Likes are hard-deleted so a pair can like again
// after removal.
type PostLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_post_likes_user_post,priority:1" json:"user_id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index:idx_post_likes_post_id;uniqueIndex:uq_post_likes_user_post,priority:2" json:"post_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for PostLike
func (PostLike) TableName() string {
	return "post_likes"
}

// BeforeCreate assigns a UUID when the database does not generate one
func (l *PostLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// CommentLike marks that a user likes a comment. PostID is denormalized from
// the comment so a post deletion can purge comment likes without walking the
// comment tree first.
type CommentLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_comment_likes_user_comment,priority:1" json:"user_id"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_likes_comment_id;uniqueIndex:uq_comment_likes_user_comment,priority:2" json:"comment_id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_likes_post_id" json:"post_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for CommentLike
func (CommentLike) TableName() string {
	return "comment_likes"
}

// BeforeCreate assigns a UUID when the database does not generate one
func (l *CommentLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
