package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"social-feed-api/internal/domain"
	"social-feed-api/internal/repository"
)

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	CreateFunc            func(ctx context.Context, post *domain.Post) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	UpdateFunc            func(ctx context.Context, post *domain.Post) error
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	FindPageFunc          func(ctx context.Context, offset, limit int) ([]*domain.Post, error)
	FindPageByUserFunc    func(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Post, error)
	CountFunc             func(ctx context.Context) (int64, error)
	CountByUserFunc       func(ctx context.Context, userID uuid.UUID) (int64, error)
	FindDeletedBeforeFunc func(ctx context.Context, cutoff time.Time) ([]*domain.Post, error)
	HardDeleteFunc        func(ctx context.Context, id uuid.UUID) error
}

func (m *MockPostRepository) WithTx(tx *gorm.DB) repository.PostRepository { return m }

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockPostRepository) Update(ctx context.Context, post *domain.Post) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockPostRepository) FindPage(ctx context.Context, offset, limit int) ([]*domain.Post, error) {
	if m.FindPageFunc != nil {
		return m.FindPageFunc(ctx, offset, limit)
	}
	return nil, nil
}

func (m *MockPostRepository) FindPageByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Post, error) {
	if m.FindPageByUserFunc != nil {
		return m.FindPageByUserFunc(ctx, userID, offset, limit)
	}
	return nil, nil
}

func (m *MockPostRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockPostRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.CountByUserFunc != nil {
		return m.CountByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockPostRepository) FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Post, error) {
	if m.FindDeletedBeforeFunc != nil {
		return m.FindDeletedBeforeFunc(ctx, cutoff)
	}
	return nil, nil
}

func (m *MockPostRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	if m.HardDeleteFunc != nil {
		return m.HardDeleteFunc(ctx, id)
	}
	return nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc              func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	UpdateFunc              func(ctx context.Context, comment *domain.Comment) error
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
	FindTopLevelByPostFunc  func(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	FindRepliesByParentFunc func(ctx context.Context, parentID uuid.UUID) ([]*domain.Comment, error)
	FindReplyIDsFunc        func(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error)
	DeleteByParentFunc      func(ctx context.Context, parentID uuid.UUID) error
	DeleteByPostFunc        func(ctx context.Context, postID uuid.UUID) error
	FindByPostIDsFunc       func(ctx context.Context, postIDs []uuid.UUID) ([]*domain.Comment, error)
	CountByPostIDsFunc      func(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	CountFunc               func(ctx context.Context) (int64, error)
}

func (m *MockCommentRepository) WithTx(tx *gorm.DB) repository.CommentRepository { return m }

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCommentRepository) FindTopLevelByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	if m.FindTopLevelByPostFunc != nil {
		return m.FindTopLevelByPostFunc(ctx, postID)
	}
	return nil, nil
}

func (m *MockCommentRepository) FindRepliesByParent(ctx context.Context, parentID uuid.UUID) ([]*domain.Comment, error) {
	if m.FindRepliesByParentFunc != nil {
		return m.FindRepliesByParentFunc(ctx, parentID)
	}
	return nil, nil
}

func (m *MockCommentRepository) FindReplyIDs(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error) {
	if m.FindReplyIDsFunc != nil {
		return m.FindReplyIDsFunc(ctx, parentID)
	}
	return nil, nil
}

func (m *MockCommentRepository) DeleteByParent(ctx context.Context, parentID uuid.UUID) error {
	if m.DeleteByParentFunc != nil {
		return m.DeleteByParentFunc(ctx, parentID)
	}
	return nil
}

func (m *MockCommentRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	if m.DeleteByPostFunc != nil {
		return m.DeleteByPostFunc(ctx, postID)
	}
	return nil
}

func (m *MockCommentRepository) FindByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*domain.Comment, error) {
	if m.FindByPostIDsFunc != nil {
		return m.FindByPostIDsFunc(ctx, postIDs)
	}
	return nil, nil
}

func (m *MockCommentRepository) CountByPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if m.CountByPostIDsFunc != nil {
		return m.CountByPostIDsFunc(ctx, postIDs)
	}
	return map[uuid.UUID]int64{}, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockLikeRepository is a mock implementation of LikeRepository
type MockLikeRepository struct {
	TogglePostLikeFunc               func(ctx context.Context, userID, postID uuid.UUID) (*domain.PostLike, bool, error)
	CountPostLikesFunc               func(ctx context.Context, postID uuid.UUID) (int64, error)
	FindPostLikesPageFunc            func(ctx context.Context, postID uuid.UUID, offset, limit int) ([]*domain.PostLike, error)
	FindPostLikesByPostIDsFunc       func(ctx context.Context, postIDs []uuid.UUID) ([]*domain.PostLike, error)
	CountPostLikesByPostIDsFunc      func(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	DeletePostLikesByPostFunc        func(ctx context.Context, postID uuid.UUID) error
	ToggleCommentLikeFunc            func(ctx context.Context, userID, commentID, postID uuid.UUID) (*domain.CommentLike, bool, error)
	CountCommentLikesFunc            func(ctx context.Context, commentID uuid.UUID) (int64, error)
	FindCommentLikesPageFunc         func(ctx context.Context, commentID uuid.UUID, offset, limit int) ([]*domain.CommentLike, error)
	DeleteCommentLikesByCommentFunc  func(ctx context.Context, commentID uuid.UUID) error
	DeleteCommentLikesByCommentsFunc func(ctx context.Context, commentIDs []uuid.UUID) error
	DeleteCommentLikesByPostFunc     func(ctx context.Context, postID uuid.UUID) error
}

func (m *MockLikeRepository) WithTx(tx *gorm.DB) repository.LikeRepository { return m }

func (m *MockLikeRepository) TogglePostLike(ctx context.Context, userID, postID uuid.UUID) (*domain.PostLike, bool, error) {
	if m.TogglePostLikeFunc != nil {
		return m.TogglePostLikeFunc(ctx, userID, postID)
	}
	return nil, false, nil
}

func (m *MockLikeRepository) CountPostLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	if m.CountPostLikesFunc != nil {
		return m.CountPostLikesFunc(ctx, postID)
	}
	return 0, nil
}

func (m *MockLikeRepository) FindPostLikesPage(ctx context.Context, postID uuid.UUID, offset, limit int) ([]*domain.PostLike, error) {
	if m.FindPostLikesPageFunc != nil {
		return m.FindPostLikesPageFunc(ctx, postID, offset, limit)
	}
	return nil, nil
}

func (m *MockLikeRepository) FindPostLikesByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]*domain.PostLike, error) {
	if m.FindPostLikesByPostIDsFunc != nil {
		return m.FindPostLikesByPostIDsFunc(ctx, postIDs)
	}
	return nil, nil
}

func (m *MockLikeRepository) CountPostLikesByPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if m.CountPostLikesByPostIDsFunc != nil {
		return m.CountPostLikesByPostIDsFunc(ctx, postIDs)
	}
	return map[uuid.UUID]int64{}, nil
}

func (m *MockLikeRepository) DeletePostLikesByPost(ctx context.Context, postID uuid.UUID) error {
	if m.DeletePostLikesByPostFunc != nil {
		return m.DeletePostLikesByPostFunc(ctx, postID)
	}
	return nil
}

func (m *MockLikeRepository) ToggleCommentLike(ctx context.Context, userID, commentID, postID uuid.UUID) (*domain.CommentLike, bool, error) {
	if m.ToggleCommentLikeFunc != nil {
		return m.ToggleCommentLikeFunc(ctx, userID, commentID, postID)
	}
	return nil, false, nil
}

func (m *MockLikeRepository) CountCommentLikes(ctx context.Context, commentID uuid.UUID) (int64, error) {
	if m.CountCommentLikesFunc != nil {
		return m.CountCommentLikesFunc(ctx, commentID)
	}
	return 0, nil
}

func (m *MockLikeRepository) FindCommentLikesPage(ctx context.Context, commentID uuid.UUID, offset, limit int) ([]*domain.CommentLike, error) {
	if m.FindCommentLikesPageFunc != nil {
		return m.FindCommentLikesPageFunc(ctx, commentID, offset, limit)
	}
	return nil, nil
}

func (m *MockLikeRepository) DeleteCommentLikesByComment(ctx context.Context, commentID uuid.UUID) error {
	if m.DeleteCommentLikesByCommentFunc != nil {
		return m.DeleteCommentLikesByCommentFunc(ctx, commentID)
	}
	return nil
}

func (m *MockLikeRepository) DeleteCommentLikesByComments(ctx context.Context, commentIDs []uuid.UUID) error {
	if m.DeleteCommentLikesByCommentsFunc != nil {
		return m.DeleteCommentLikesByCommentsFunc(ctx, commentIDs)
	}
	return nil
}

func (m *MockLikeRepository) DeleteCommentLikesByPost(ctx context.Context, postID uuid.UUID) error {
	if m.DeleteCommentLikesByPostFunc != nil {
		return m.DeleteCommentLikesByPostFunc(ctx, postID)
	}
	return nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc                func(ctx context.Context, user *domain.User) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByIDsFunc             func(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	FindByEmailOrUsernameFunc func(ctx context.Context, emailOrUsername string) (*domain.User, error)
	UpdateFunc                func(ctx context.Context, user *domain.User) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return []*domain.User{}, nil
}

func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, emailOrUsername string) (*domain.User, error) {
	if m.FindByEmailOrUsernameFunc != nil {
		return m.FindByEmailOrUsernameFunc(ctx, emailOrUsername)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// MockTxManager runs the transaction function directly, without a database
type MockTxManager struct {
	TransactionFunc func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func (m *MockTxManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if m.TransactionFunc != nil {
		return m.TransactionFunc(ctx, fn)
	}
	return fn(nil)
}
