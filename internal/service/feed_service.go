package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"social-feed-api/internal/cache"
	"social-feed-api/internal/domain"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
)

// Preview sizes for enriched posts. The preview arrays are newest-first
// prefixes of the full lists; totals always count the untruncated sets.
const (
	feedLikesPreview    = 3
	feedCommentsPreview = 2
	postLikesPreview    = 3
	postCommentsPreview = 3
)

// FeedService assembles enriched post pages: author preview, like and
// comment previews, untruncated totals
type FeedService interface {
	ListPosts(ctx context.Context, q *dto.PaginationQuery) (*dto.FeedListResponse, error)
	ListUserPosts(ctx context.Context, userID uuid.UUID, q *dto.PaginationQuery) (*dto.FeedListResponse, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*dto.FeedPostResponse, error)
}

// feedServiceImpl is the implementation of FeedService
type feedServiceImpl struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
	feedCache   *cache.FeedCache
	logger      *zap.Logger
}

// NewFeedService creates a new instance of FeedService
func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	feedCache *cache.FeedCache,
	logger *zap.Logger,
) FeedService {
	return &feedServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		feedCache:   feedCache,
		logger:      logger,
	}
}

// ListPosts returns one newest-first page of enriched posts
func (s *feedServiceImpl) ListPosts(ctx context.Context, q *dto.PaginationQuery) (*dto.FeedListResponse, error) {
	q.Normalize()

	posts, err := s.postRepo.FindPage(ctx, q.Offset(), q.Limit)
	if err != nil {
		s.logger.Error("Failed to list posts", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list posts", err.Error())
	}
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count posts", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count posts", err.Error())
	}

	enriched, err := s.enrichPosts(ctx, posts, feedLikesPreview, feedCommentsPreview)
	if err != nil {
		return nil, err
	}

	return &dto.FeedListResponse{
		Posts:    enriched,
		PageMeta: dto.NewPageMeta(total, q.Page, q.Limit),
	}, nil
}

// ListUserPosts returns one newest-first page of a single author's enriched
// posts; totals count only that author's posts
func (s *feedServiceImpl) ListUserPosts(ctx context.Context, userID uuid.UUID, q *dto.PaginationQuery) (*dto.FeedListResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		s.logger.Error("Failed to verify user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify user", err.Error())
	}
	q.Normalize()

	posts, err := s.postRepo.FindPageByUser(ctx, userID, q.Offset(), q.Limit)
	if err != nil {
		s.logger.Error("Failed to list user posts", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list posts", err.Error())
	}
	total, err := s.postRepo.CountByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to count user posts", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count posts", err.Error())
	}

	enriched, err := s.enrichPosts(ctx, posts, feedLikesPreview, feedCommentsPreview)
	if err != nil {
		return nil, err
	}

	return &dto.FeedListResponse{
		Posts:    enriched,
		PageMeta: dto.NewPageMeta(total, q.Page, q.Limit),
	}, nil
}

// GetPost returns a single enriched post, served from the cache when warm
func (s *feedServiceImpl) GetPost(ctx context.Context, postID uuid.UUID) (*dto.FeedPostResponse, error) {
	if cached, ok := s.feedCache.GetPost(ctx, postID); ok {
		return cached, nil
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Post not found", "")
		}
		s.logger.Error("Failed to fetch post", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch post", err.Error())
	}

	enriched, err := s.enrichPosts(ctx, []*domain.Post{post}, postLikesPreview, postCommentsPreview)
	if err != nil {
		return nil, err
	}

	s.feedCache.SetPost(ctx, postID, enriched[0])
	return enriched[0], nil
}

// enrichPosts assembles the feed projection for a page of posts with four
// batched fetches: likes by post ids, comments by post ids, the two GROUP BY
// counts, then one user batch covering authors, likers and commenters.
func (s *feedServiceImpl) enrichPosts(ctx context.Context, posts []*domain.Post, likesPreview, commentsPreview int) ([]*dto.FeedPostResponse, error) {
	if len(posts) == 0 {
		return []*dto.FeedPostResponse{}, nil
	}

	postIDs := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	likes, err := s.likeRepo.FindPostLikesByPostIDs(ctx, postIDs)
	if err != nil {
		s.logger.Error("Failed to fetch likes", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to assemble feed", err.Error())
	}
	comments, err := s.commentRepo.FindByPostIDs(ctx, postIDs)
	if err != nil {
		s.logger.Error("Failed to fetch comments", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to assemble feed", err.Error())
	}
	likeCounts, err := s.likeRepo.CountPostLikesByPostIDs(ctx, postIDs)
	if err != nil {
		s.logger.Error("Failed to count likes", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to assemble feed", err.Error())
	}
	commentCounts, err := s.commentRepo.CountByPostIDs(ctx, postIDs)
	if err != nil {
		s.logger.Error("Failed to count comments", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to assemble feed", err.Error())
	}

	// Group the related rows per post; rows arrive newest first so the
	// first N per post are the preview.
	likesByPost := make(map[uuid.UUID][]*domain.PostLike, len(posts))
	for _, l := range likes {
		if len(likesByPost[l.PostID]) < likesPreview {
			likesByPost[l.PostID] = append(likesByPost[l.PostID], l)
		}
	}
	commentsByPost := make(map[uuid.UUID][]*domain.Comment, len(posts))
	for _, c := range comments {
		if len(commentsByPost[c.PostID]) < commentsPreview {
			commentsByPost[c.PostID] = append(commentsByPost[c.PostID], c)
		}
	}

	var userIDs []uuid.UUID
	for _, p := range posts {
		userIDs = append(userIDs, p.UserID)
	}
	for _, group := range likesByPost {
		for _, l := range group {
			userIDs = append(userIDs, l.UserID)
		}
	}
	for _, group := range commentsByPost {
		for _, c := range group {
			userIDs = append(userIDs, c.UserID)
		}
	}
	previews, err := loadUserPreviews(ctx, s.userRepo, userIDs)
	if err != nil {
		s.logger.Error("Failed to load user previews", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to assemble feed", err.Error())
	}
	previewFor := func(id uuid.UUID) domain.UserPreview {
		if p, ok := previews[id]; ok {
			return p
		}
		return domain.UserPreview{UserID: id.String()}
	}

	enriched := make([]*dto.FeedPostResponse, 0, len(posts))
	for _, p := range posts {
		likeItems := make([]*dto.LikeResponse, 0, likesPreview)
		for _, l := range likesByPost[p.ID] {
			likeItems = append(likeItems, &dto.LikeResponse{
				LikeID:    l.ID,
				User:      previewFor(l.UserID),
				CreatedAt: l.CreatedAt,
			})
		}
		commentItems := make([]*dto.CommentResponse, 0, commentsPreview)
		for _, c := range commentsByPost[p.ID] {
			resp := dto.NewCommentResponse(c)
			resp.User = previewFor(c.UserID)
			commentItems = append(commentItems, resp)
		}

		enriched = append(enriched, &dto.FeedPostResponse{
			PostID:        p.ID,
			User:          previewFor(p.UserID),
			Content:       p.Content,
			Images:        p.ImageKeys(),
			Likes:         likeItems,
			Comments:      commentItems,
			TotalLikes:    likeCounts[p.ID],
			TotalComments: commentCounts[p.ID],
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		})
	}
	return enriched, nil
}
