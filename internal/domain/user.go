package domain

// User represents an account that authors posts, comments and likes
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Image    string `gorm:"type:text;not null;default:''" json:"image"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// Preview returns the denormalized author preview embedded in feed responses
func (u *User) Preview() UserPreview {
	return UserPreview{
		UserID:   u.ID.String(),
		Name:     u.Name,
		Username: u.Username,
		Image:    u.Image,
	}
}

// UserPreview is the truncated user projection (name, username, image)
// attached to posts, comments and likes. A missing author leaves the
// preview empty rather than failing the listing.
type UserPreview struct {
	UserID   string `json:"userId,omitempty"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Image    string `json:"image,omitempty"`
}
