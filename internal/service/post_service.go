package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"social-feed-api/internal/cache"
	"social-feed-api/internal/client"
	"social-feed-api/internal/domain"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/metrics"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
)

// PostService defines the interface for post business logic
type PostService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req *dto.CreatePostRequest, imageKeys []string) (*dto.PostMutationResponse, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*dto.PostResponse, error)
	EditPostContent(ctx context.Context, userID, postID uuid.UUID, req *dto.EditPostContentRequest) (*dto.PostMutationResponse, error)
	AddPostImages(ctx context.Context, userID, postID uuid.UUID, imageKeys []string) (*dto.PostMutationResponse, error)
	DeletePostImages(ctx context.Context, userID, postID uuid.UUID, req *dto.DeletePostImagesRequest) (*dto.PostMutationResponse, error)
	DeletePost(ctx context.Context, userID, postID uuid.UUID) (*dto.DeletedPostResponse, error)
}

// postServiceImpl is the implementation of PostService
type postServiceImpl struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
	txManager   repository.TxManager
	storage     client.StorageClient
	feedCache   *cache.FeedCache
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewPostService creates a new instance of PostService
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	txManager repository.TxManager,
	storage client.StorageClient,
	feedCache *cache.FeedCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		storage:     storage,
		feedCache:   feedCache,
		metrics:     m,
		logger:      logger,
	}
}

// CreatePost stores a new post with its already-staged image keys. On any
// failure the staged objects are removed again so storage holds no orphans.
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uuid.UUID, req *dto.CreatePostRequest, imageKeys []string) (*dto.PostMutationResponse, error) {
	if len(imageKeys) > domain.MaxImagesCount {
		s.cleanupStagedKeys(imageKeys)
		return nil, response.NewAppError(response.ErrCodeValidation,
			fmt.Sprintf("A post can hold at most %d images", domain.MaxImagesCount), "")
	}

	post := &domain.Post{
		UserID:  userID,
		Content: req.Content,
	}
	if err := post.SetImageKeys(imageKeys); err != nil {
		s.cleanupStagedKeys(imageKeys)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode image list", err.Error())
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.cleanupStagedKeys(imageKeys)
		s.logger.Error("Failed to create post", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create post", err.Error())
	}

	s.metrics.IncrementPostCreated()
	s.logger.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("images", len(imageKeys)),
	)

	return &dto.PostMutationResponse{
		Message: "Post created successfully",
		Post:    dto.NewPostResponse(post),
	}, nil
}

// GetPost returns a single post
func (s *postServiceImpl) GetPost(ctx context.Context, postID uuid.UUID) (*dto.PostResponse, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return dto.NewPostResponse(post), nil
}

// EditPostContent replaces a post's text content
func (s *postServiceImpl) EditPostContent(ctx context.Context, userID, postID uuid.UUID, req *dto.EditPostContentRequest) (*dto.PostMutationResponse, error) {
	post, err := s.findOwnedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	post.Content = req.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		s.logger.Error("Failed to update post", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update post", err.Error())
	}

	s.feedCache.InvalidatePost(ctx, postID)

	return &dto.PostMutationResponse{
		Message: "Post updated successfully",
		Post:    dto.NewPostResponse(post),
	}, nil
}

// AddPostImages appends already-staged image keys to a post. The combined
// count must stay strictly below MaxImagesCount; on any failure the staged
// objects are removed again.
func (s *postServiceImpl) AddPostImages(ctx context.Context, userID, postID uuid.UUID, imageKeys []string) (*dto.PostMutationResponse, error) {
	if len(imageKeys) == 0 {
		return nil, response.NewAppError(response.ErrCodeValidation, "At least one image is required", "")
	}

	post, err := s.findOwnedPost(ctx, userID, postID)
	if err != nil {
		s.cleanupStagedKeys(imageKeys)
		return nil, err
	}

	existing := post.ImageKeys()
	if len(existing)+len(imageKeys) >= domain.MaxImagesCount {
		s.cleanupStagedKeys(imageKeys)
		return nil, response.NewAppError(response.ErrCodeValidation,
			fmt.Sprintf("A post can hold at most %d images", domain.MaxImagesCount), "")
	}

	if err := post.SetImageKeys(append(existing, imageKeys...)); err != nil {
		s.cleanupStagedKeys(imageKeys)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode image list", err.Error())
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		s.cleanupStagedKeys(imageKeys)
		s.logger.Error("Failed to add post images", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add images", err.Error())
	}

	s.feedCache.InvalidatePost(ctx, postID)

	return &dto.PostMutationResponse{
		Message: "Images added successfully",
		Post:    dto.NewPostResponse(post),
	}, nil
}

// DeletePostImages removes the listed keys from a post. Keys not present on
// the post are silently ignored; storage objects are deleted best-effort.
func (s *postServiceImpl) DeletePostImages(ctx context.Context, userID, postID uuid.UUID, req *dto.DeletePostImagesRequest) (*dto.PostMutationResponse, error) {
	post, err := s.findOwnedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	remove := make(map[string]struct{}, len(req.Images))
	for _, key := range req.Images {
		remove[key] = struct{}{}
	}

	var kept []string
	var removed []string
	for _, key := range post.ImageKeys() {
		if _, ok := remove[key]; ok {
			removed = append(removed, key)
		} else {
			kept = append(kept, key)
		}
	}

	if err := post.SetImageKeys(kept); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode image list", err.Error())
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		s.logger.Error("Failed to delete post images", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete images", err.Error())
	}

	s.cleanupStagedKeys(removed)
	s.feedCache.InvalidatePost(ctx, postID)

	return &dto.PostMutationResponse{
		Message: "Images deleted successfully",
		Post:    dto.NewPostResponse(post),
	}, nil
}

// DeletePost removes a post and everything hanging off it in one transaction:
// post likes, comment likes of the post, comments of the post, then the post
// itself. Storage objects are deleted best-effort after the transaction.
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uuid.UUID) (*dto.DeletedPostResponse, error) {
	post, err := s.findOwnedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	snapshot := dto.NewPostResponse(post)
	imageKeys := post.ImageKeys()

	err = s.txManager.Transaction(ctx, func(tx *gorm.DB) error {
		likeRepo := s.likeRepo.WithTx(tx)
		commentRepo := s.commentRepo.WithTx(tx)
		postRepo := s.postRepo.WithTx(tx)

		if err := likeRepo.DeletePostLikesByPost(ctx, postID); err != nil {
			return err
		}
		if err := likeRepo.DeleteCommentLikesByPost(ctx, postID); err != nil {
			return err
		}
		if err := commentRepo.DeleteByPost(ctx, postID); err != nil {
			return err
		}
		return postRepo.Delete(ctx, postID)
	})
	if err != nil {
		s.logger.Error("Failed to delete post", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete post", err.Error())
	}

	s.cleanupStagedKeys(imageKeys)
	s.feedCache.InvalidatePost(ctx, postID)
	s.metrics.RecordCascadeDelete("post")
	s.logger.Info("Post deleted",
		zap.String("post_id", postID.String()),
		zap.String("user_id", userID.String()),
	)

	return &dto.DeletedPostResponse{
		Message:     "Post deleted successfully",
		DeletedPost: snapshot,
	}, nil
}

// findPost fetches a post, mapping a missing row to NotFound
func (s *postServiceImpl) findPost(ctx context.Context, postID uuid.UUID) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Post not found", "")
		}
		s.logger.Error("Failed to fetch post", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch post", err.Error())
	}
	return post, nil
}

// findOwnedPost fetches a post and verifies the caller authored it
func (s *postServiceImpl) findOwnedPost(ctx context.Context, userID, postID uuid.UUID) (*domain.Post, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the author can modify this post", "")
	}
	return post, nil
}

// cleanupStagedKeys deletes storage objects fire-and-forget. Failures are
// logged, never escalated; the caller's outcome is already decided.
func (s *postServiceImpl) cleanupStagedKeys(keys []string) {
	ctx := context.Background()
	for _, key := range keys {
		if err := s.storage.DeleteFile(ctx, key); err != nil {
			s.logger.Warn("Failed to delete storage object",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}
