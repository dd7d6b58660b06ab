package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"social-feed-api/internal/cache"
	"social-feed-api/internal/domain"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/metrics"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
)

// LikeService defines the interface for like business logic. Post likes and
// comment likes share the toggle protocol and the listing shape.
type LikeService interface {
	TogglePostLike(ctx context.Context, userID, postID uuid.UUID) (*dto.ToggleLikeResponse, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (*dto.ToggleLikeResponse, error)
	GetPostLikesCount(ctx context.Context, postID uuid.UUID) (*dto.LikeCountResponse, error)
	GetCommentLikesCount(ctx context.Context, commentID uuid.UUID) (*dto.LikeCountResponse, error)
	GetPostLikes(ctx context.Context, postID uuid.UUID, q *dto.PaginationQuery) (*dto.LikeListResponse, error)
	GetCommentLikes(ctx context.Context, commentID uuid.UUID, q *dto.PaginationQuery) (*dto.LikeListResponse, error)
}

// likeServiceImpl is the implementation of LikeService
type likeServiceImpl struct {
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	feedCache   *cache.FeedCache
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewLikeService creates a new instance of LikeService
func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	feedCache *cache.FeedCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) LikeService {
	return &likeServiceImpl{
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		feedCache:   feedCache,
		metrics:     m,
		logger:      logger,
	}
}

// TogglePostLike flips the caller's like state on a post
func (s *likeServiceImpl) TogglePostLike(ctx context.Context, userID, postID uuid.UUID) (*dto.ToggleLikeResponse, error) {
	if err := s.verifyPost(ctx, postID); err != nil {
		return nil, err
	}

	like, added, err := s.likeRepo.TogglePostLike(ctx, userID, postID)
	if err != nil {
		s.logger.Error("Failed to toggle post like", zap.Error(err),
			zap.String("post_id", postID.String()), zap.String("user_id", userID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to toggle like", err.Error())
	}

	s.metrics.RecordLikeToggle("post", added)
	s.feedCache.InvalidatePost(ctx, postID)

	var id uuid.UUID
	var createdAt time.Time
	if like != nil {
		id, createdAt = like.ID, like.CreatedAt
	}
	return s.toggleResponse(ctx, userID, added, id, createdAt)
}

// ToggleCommentLike flips the caller's like state on a comment
func (s *likeServiceImpl) ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (*dto.ToggleLikeResponse, error) {
	comment, err := s.verifyComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	like, added, err := s.likeRepo.ToggleCommentLike(ctx, userID, commentID, comment.PostID)
	if err != nil {
		s.logger.Error("Failed to toggle comment like", zap.Error(err),
			zap.String("comment_id", commentID.String()), zap.String("user_id", userID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to toggle like", err.Error())
	}

	s.metrics.RecordLikeToggle("comment", added)
	s.feedCache.InvalidatePost(ctx, comment.PostID)

	var id uuid.UUID
	var createdAt time.Time
	if like != nil {
		id, createdAt = like.ID, like.CreatedAt
	}
	return s.toggleResponse(ctx, userID, added, id, createdAt)
}

// GetPostLikesCount counts all likes of a post
func (s *likeServiceImpl) GetPostLikesCount(ctx context.Context, postID uuid.UUID) (*dto.LikeCountResponse, error) {
	if err := s.verifyPost(ctx, postID); err != nil {
		return nil, err
	}
	count, err := s.likeRepo.CountPostLikes(ctx, postID)
	if err != nil {
		s.logger.Error("Failed to count post likes", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}
	return &dto.LikeCountResponse{Count: count}, nil
}

// GetCommentLikesCount counts all likes of a comment
func (s *likeServiceImpl) GetCommentLikesCount(ctx context.Context, commentID uuid.UUID) (*dto.LikeCountResponse, error) {
	if _, err := s.verifyComment(ctx, commentID); err != nil {
		return nil, err
	}
	count, err := s.likeRepo.CountCommentLikes(ctx, commentID)
	if err != nil {
		s.logger.Error("Failed to count comment likes", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}
	return &dto.LikeCountResponse{Count: count}, nil
}

// GetPostLikes lists a post's likes, newest first, with liker previews
func (s *likeServiceImpl) GetPostLikes(ctx context.Context, postID uuid.UUID, q *dto.PaginationQuery) (*dto.LikeListResponse, error) {
	if err := s.verifyPost(ctx, postID); err != nil {
		return nil, err
	}
	q.Normalize()

	likes, err := s.likeRepo.FindPostLikesPage(ctx, postID, q.Offset(), q.Limit)
	if err != nil {
		s.logger.Error("Failed to list post likes", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list likes", err.Error())
	}
	total, err := s.likeRepo.CountPostLikes(ctx, postID)
	if err != nil {
		s.logger.Error("Failed to count post likes", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}

	items := make([]likeRecord, len(likes))
	for i, l := range likes {
		items[i] = likeRecord{ID: l.ID, UserID: l.UserID, CreatedAt: l.CreatedAt}
	}
	responses, err := s.toLikeResponses(ctx, items)
	if err != nil {
		return nil, err
	}

	return &dto.LikeListResponse{
		Message:  "Likes fetched successfully",
		Likes:    responses,
		PageMeta: dto.NewPageMeta(total, q.Page, q.Limit),
	}, nil
}

// GetCommentLikes lists a comment's likes, newest first, with liker previews
func (s *likeServiceImpl) GetCommentLikes(ctx context.Context, commentID uuid.UUID, q *dto.PaginationQuery) (*dto.LikeListResponse, error) {
	if _, err := s.verifyComment(ctx, commentID); err != nil {
		return nil, err
	}
	q.Normalize()

	likes, err := s.likeRepo.FindCommentLikesPage(ctx, commentID, q.Offset(), q.Limit)
	if err != nil {
		s.logger.Error("Failed to list comment likes", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list likes", err.Error())
	}
	total, err := s.likeRepo.CountCommentLikes(ctx, commentID)
	if err != nil {
		s.logger.Error("Failed to count comment likes", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}

	items := make([]likeRecord, len(likes))
	for i, l := range likes {
		items[i] = likeRecord{ID: l.ID, UserID: l.UserID, CreatedAt: l.CreatedAt}
	}
	responses, err := s.toLikeResponses(ctx, items)
	if err != nil {
		return nil, err
	}

	return &dto.LikeListResponse{
		Message:  "Likes fetched successfully",
		Likes:    responses,
		PageMeta: dto.NewPageMeta(total, q.Page, q.Limit),
	}, nil
}

// likeRecord is the kind-independent projection of a like row
type likeRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// verifyPost maps a missing post to NotFound
func (s *likeServiceImpl) verifyPost(ctx context.Context, postID uuid.UUID) error {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Post not found", "")
		}
		s.logger.Error("Failed to verify post", zap.Error(err), zap.String("post_id", postID.String()))
		return response.NewAppError(response.ErrCodeInternal, "Failed to verify post", err.Error())
	}
	return nil
}

// verifyComment maps a missing comment to NotFound
func (s *likeServiceImpl) verifyComment(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		s.logger.Error("Failed to verify comment", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify comment", err.Error())
	}
	return comment, nil
}

// toggleResponse builds the toggle outcome. The like payload is present only
// when a like was added.
func (s *likeServiceImpl) toggleResponse(ctx context.Context, userID uuid.UUID, added bool, id uuid.UUID, createdAt time.Time) (*dto.ToggleLikeResponse, error) {
	if !added {
		return &dto.ToggleLikeResponse{
			Message: "Like removed successfully",
			Added:   false,
		}, nil
	}

	likeResp := &dto.LikeResponse{
		LikeID:    id,
		User:      domain.UserPreview{UserID: userID.String()},
		CreatedAt: createdAt,
	}
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		likeResp.User = user.Preview()
	}

	return &dto.ToggleLikeResponse{
		Message: "Like added successfully",
		Added:   true,
		Like:    likeResp,
	}, nil
}

// toLikeResponses attaches liker previews to a page of likes
func (s *likeServiceImpl) toLikeResponses(ctx context.Context, likes []likeRecord) ([]*dto.LikeResponse, error) {
	ids := make([]uuid.UUID, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.UserID)
	}
	previews, err := loadUserPreviews(ctx, s.userRepo, ids)
	if err != nil {
		s.logger.Error("Failed to load liker previews", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load likers", err.Error())
	}

	items := make([]*dto.LikeResponse, 0, len(likes))
	for _, l := range likes {
		resp := &dto.LikeResponse{
			LikeID:    l.ID,
			User:      domain.UserPreview{UserID: l.UserID.String()},
			CreatedAt: l.CreatedAt,
		}
		if preview, ok := previews[l.UserID]; ok {
			resp.User = preview
		}
		items = append(items, resp)
	}
	return items, nil
}
