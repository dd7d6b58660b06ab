package domain

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MaxImagesCount is the upper bound for images attached to a single post.
// The add-images path keeps the combined count strictly below this value.
const MaxImagesCount = 10

// Post represents a user-authored post with an ordered list of image keys
type Post struct {
	BaseModel
	UserID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_posts_user_id" json:"user_id"`
	Content string         `gorm:"type:text;not null" json:"content"`
	Images  datatypes.JSON `gorm:"type:jsonb" json:"images"`
	User    User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// ImageKeys decodes the stored image list. A null column decodes to an empty list.
func (p *Post) ImageKeys() []string {
	if len(p.Images) == 0 {
		return []string{}
	}
	var keys []string
	if err := json.Unmarshal(p.Images, &keys); err != nil {
		return []string{}
	}
	return keys
}

// SetImageKeys replaces the stored image list
func (p *Post) SetImageKeys(keys []string) error {
	if keys == nil {
		keys = []string{}
	}
	data, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	p.Images = datatypes.JSON(data)
	return nil
}
