package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"social-feed-api/internal/domain"
)

// LikeRepository defines the interface for post-like and comment-like data
// access. Both like kinds live here; they share the toggle protocol and are
// purged together by the cascade paths.
type LikeRepository interface {
	WithTx(tx *gorm.DB) LikeRepository

	TogglePostLike(ctx context.Context, userID, postID uuid.UUID) (*domain.PostLike, bool, error)
	CountPostLikes(ctx context.Context, postID uuid.UUID) (int64, error)
	FindPostLikesPage(ctx context.Context, postID uuid.UUID, offset, limit int) ([]*domain.PostLike, error)
	FindPostLikesByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*domain.PostLike, error)
	CountPostLikesByPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	DeletePostLikesByPost(ctx context.Context, postID uuid.UUID) error

	ToggleCommentLike(ctx context.Context, userID, commentID, postID uuid.UUID) (*domain.CommentLike, bool, error)
	CountCommentLikes(ctx context.Context, commentID uuid.UUID) (int64, error)
	FindCommentLikesPage(ctx context.Context, commentID uuid.UUID, offset, limit int) ([]*domain.CommentLike, error)
	DeleteCommentLikesByComment(ctx context.Context, commentID uuid.UUID) error
	DeleteCommentLikesByComments(ctx context.Context, commentIDs []uuid.UUID) error
	DeleteCommentLikesByPost(ctx context.Context, postID uuid.UUID) error
}

// likeRepositoryImpl is the GORM implementation of LikeRepository
type likeRepositoryImpl struct {
	db *gorm.DB
}

// NewLikeRepository creates a new instance of LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepositoryImpl{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *likeRepositoryImpl) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepositoryImpl{db: tx}
}

// TogglePostLike flips the like state for (user, post) inside one
// transaction: delete when present, insert when absent. The composite unique
// index turns a concurrent double insert into ErrDuplicatedKey, which is
// resolved as a removal, so two interleaved toggles still end one apart.
func (r *likeRepositoryImpl) TogglePostLike(ctx context.Context, userID, postID uuid.UUID) (*domain.PostLike, bool, error) {
	var like *domain.PostLike
	added := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&domain.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		l := &domain.PostLike{UserID: userID, PostID: postID}
		if err := tx.Create(l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&domain.PostLike{}).Error
			}
			return err
		}
		like = l
		added = true
		return nil
	})

	return like, added, err
}

// CountPostLikes counts likes of a post
func (r *likeRepositoryImpl) CountPostLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// FindPostLikesPage returns one page of a post's likes, newest first
func (r *likeRepositoryImpl) FindPostLikesPage(ctx context.Context, postID uuid.UUID, offset, limit int) ([]*domain.PostLike, error) {
	var likes []*domain.PostLike
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// FindPostLikesByPostIDs returns all likes of the given posts, newest first,
// for preview assembly in the feed
func (r *likeRepositoryImpl) FindPostLikesByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*domain.PostLike, error) {
	if len(postIDs) == 0 {
		return []*domain.PostLike{}, nil
	}
	var likes []*domain.PostLike
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at DESC").
		Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// CountPostLikesByPostIDs counts likes per post over the untruncated set
func (r *likeRepositoryImpl) CountPostLikesByPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
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
		Model(&domain.PostLike{}).
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

// DeletePostLikesByPost removes all likes of a post
func (r *likeRepositoryImpl) DeletePostLikesByPost(ctx context.Context, postID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&domain.PostLike{}).Error
}

// ToggleCommentLike flips the like state for (user, comment); postID is the
// comment's denormalized post reference stored on the new like row
func (r *likeRepositoryImpl) ToggleCommentLike(ctx context.Context, userID, commentID, postID uuid.UUID) (*domain.CommentLike, bool, error) {
	var like *domain.CommentLike
	added := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&domain.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		l := &domain.CommentLike{UserID: userID, CommentID: commentID, PostID: postID}
		if err := tx.Create(l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&domain.CommentLike{}).Error
			}
			return err
		}
		like = l
		added = true
		return nil
	})

	return like, added, err
}

// CountCommentLikes counts likes of a comment
func (r *likeRepositoryImpl) CountCommentLikes(ctx context.Context, commentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

// FindCommentLikesPage returns one page of a comment's likes, newest first
func (r *likeRepositoryImpl) FindCommentLikesPage(ctx context.Context, commentID uuid.UUID, offset, limit int) ([]*domain.CommentLike, error) {
	var likes []*domain.CommentLike
	if err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// DeleteCommentLikesByComment removes all likes of one comment
func (r *likeRepositoryImpl) DeleteCommentLikesByComment(ctx context.Context, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("comment_id = ?", commentID).Delete(&domain.CommentLike{}).Error
}

// DeleteCommentLikesByComments removes all likes of the given comments
func (r *likeRepositoryImpl) DeleteCommentLikesByComments(ctx context.Context, commentIDs []uuid.UUID) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("comment_id IN ?", commentIDs).Delete(&domain.CommentLike{}).Error
}

// DeleteCommentLikesByPost removes all comment likes under a post via the
// denormalized post reference, without walking the comment tree
func (r *likeRepositoryImpl) DeleteCommentLikesByPost(ctx context.Context, postID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&domain.CommentLike{}).Error
}
