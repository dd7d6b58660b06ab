package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"social-feed-api/internal/domain"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindPage(ctx context.Context, offset, limit int) ([]*domain.Post, error)
	FindPageByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Post, error)
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Post, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
}

// postRepositoryImpl is the GORM implementation of PostRepository
type postRepositoryImpl struct {
	db *gorm.DB
}

// NewPostRepository creates a new instance of PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepositoryImpl{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *postRepositoryImpl) WithTx(tx *gorm.DB) PostRepository {
	return &postRepositoryImpl{db: tx}
}

// Create creates a new post
func (r *postRepositoryImpl) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID finds a post by its ID
func (r *postRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update saves the full post record
func (r *postRepositoryImpl) Update(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete soft deletes a post
func (r *postRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Post{}, "id = ?", id).Error
}

// FindPage returns one page of posts, newest first
func (r *postRepositoryImpl) FindPage(ctx context.Context, offset, limit int) ([]*domain.Post, error) {
	var posts []*domain.Post
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindPageByUser returns one page of a single author's posts, newest first
func (r *postRepositoryImpl) FindPageByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Post, error) {
	var posts []*domain.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Count counts all posts
func (r *postRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Post{}).Count(&count).Error
	return count, err
}

// CountByUser counts one author's posts
func (r *postRepositoryImpl) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// FindDeletedBefore returns soft-deleted posts older than the cutoff,
// for the cleanup job
func (r *postRepositoryImpl) FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Post, error) {
	var posts []*domain.Post
	if err := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// HardDelete permanently removes a post row
func (r *postRepositoryImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&domain.Post{}, "id = ?", id).Error
}
