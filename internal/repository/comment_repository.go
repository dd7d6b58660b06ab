package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"social-feed-api/internal/domain"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	WithTx(tx *gorm.DB) CommentRepository
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindTopLevelByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	FindRepliesByParent(ctx context.Context, parentID uuid.UUID) ([]*domain.Comment, error)
	FindReplyIDs(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error)
	DeleteByParent(ctx context.Context, parentID uuid.UUID) error
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
	FindByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*domain.Comment, error)
	CountByPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Count(ctx context.Context) (int64, error)
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *commentRepositoryImpl) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: tx}
}

// Create creates a new comment
func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByID finds a comment by its ID
func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update saves the full comment record
func (r *commentRepositoryImpl) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete soft deletes a comment
func (r *commentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id).Error
}

// FindTopLevelByPost returns the top-level comments of a post, newest first
func (r *commentRepositoryImpl) FindTopLevelByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND parent_comment_id IS NULL", postID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// FindRepliesByParent returns the direct replies of a comment, newest first
func (r *commentRepositoryImpl) FindRepliesByParent(ctx context.Context, parentID uuid.UUID) ([]*domain.Comment, error) {
	var replies []*domain.Comment
	if err := r.db.WithContext(ctx).
		Where("parent_comment_id = ?", parentID).
		Order("created_at DESC").
		Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

// FindReplyIDs returns only the ids of the direct replies of a comment
func (r *commentRepositoryImpl) FindReplyIDs(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("parent_comment_id = ?", parentID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByParent soft deletes all direct replies of a comment
func (r *commentRepositoryImpl) DeleteByParent(ctx context.Context, parentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("parent_comment_id = ?", parentID).
		Delete(&domain.Comment{}).Error
}

// DeleteByPost soft deletes all comments of a post, replies included
func (r *commentRepositoryImpl) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&domain.Comment{}).Error
}

// FindByPostIDs returns all comments of the given posts, newest first,
// for preview assembly in the feed
func (r *commentRepositoryImpl) FindByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*domain.Comment, error) {
	if len(postIDs) == 0 {
		return []*domain.Comment{}, nil
	}
	var comments []*domain.Comment
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByPostIDs counts comments per post over the untruncated set
func (r *commentRepositoryImpl) CountByPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	type row struct {
		PostID uuid.UUID
		Total  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.PostID] = r.Total
	}
	return counts, nil
}

// Count counts all comments
func (r *commentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Comment{}).Count(&count).Error
	return count, err
}
