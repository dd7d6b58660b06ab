package domain

import "github.com/google/uuid"

// Comment represents a comment on a post. A nil ParentCommentID marks a
// top-level comment; a non-nil one marks a direct reply. Replies always
// carry the post id of their parent, never one supplied by the caller,
// and nesting stops at one level: replies to replies become siblings.
type Comment struct {
	BaseModel
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"user_id"`
	PostID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_post_id" json:"post_id"`
	ParentCommentID *uuid.UUID `gorm:"type:uuid;index:idx_comments_parent_id" json:"parent_comment_id"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	User            User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// IsReply reports whether the comment is a direct reply to another comment
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
