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
	"social-feed-api/internal/metrics"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	CreateComment(ctx context.Context, userID, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentMutationResponse, error)
	CreateReply(ctx context.Context, userID, parentCommentID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentMutationResponse, error)
	GetComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error)
	EditComment(ctx context.Context, userID, commentID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentMutationResponse, error)
	GetPostComments(ctx context.Context, postID uuid.UUID) (*dto.CommentListResponse, error)
	GetCommentReplies(ctx context.Context, commentID uuid.UUID) (*dto.ReplyListResponse, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) (*dto.DeletedCommentResponse, error)
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
	txManager   repository.TxManager
	feedCache   *cache.FeedCache
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	txManager repository.TxManager,
	feedCache *cache.FeedCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		feedCache:   feedCache,
		metrics:     m,
		logger:      logger,
	}
}

// CreateComment creates a top-level comment on a post
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentMutationResponse, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Post not found", "")
		}
		s.logger.Error("Failed to verify post", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify post", err.Error())
	}

	comment := &domain.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error("Failed to create comment", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	s.metrics.IncrementCommentCreated()
	s.feedCache.InvalidatePost(ctx, postID)

	return &dto.CommentMutationResponse{
		Message: "Comment created successfully",
		Comment: dto.NewCommentResponse(comment),
	}, nil
}

// CreateReply creates a reply under a comment. The reply's post is always
// copied from the parent and the tree stays one level deep: a reply to a
// reply is attached to the original parent, as a sibling.
func (s *commentServiceImpl) CreateReply(ctx context.Context, userID, parentCommentID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentMutationResponse, error) {
	parent, err := s.findComment(ctx, parentCommentID)
	if err != nil {
		return nil, err
	}
	parentID := parent.ID
	if parent.IsReply() {
		parentID = *parent.ParentCommentID
	}

	reply := &domain.Comment{
		UserID:          userID,
		PostID:          parent.PostID,
		ParentCommentID: &parentID,
		Content:         req.Content,
	}
	if err := s.commentRepo.Create(ctx, reply); err != nil {
		s.logger.Error("Failed to create reply", zap.Error(err), zap.String("parent_comment_id", parentCommentID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create reply", err.Error())
	}

	s.metrics.IncrementCommentCreated()
	s.feedCache.InvalidatePost(ctx, parent.PostID)

	return &dto.CommentMutationResponse{
		Message: "Reply created successfully",
		Comment: dto.NewCommentResponse(reply),
	}, nil
}

// GetComment returns a single comment
func (s *commentServiceImpl) GetComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return dto.NewCommentResponse(comment), nil
}

// EditComment replaces a comment's content, author-only
func (s *commentServiceImpl) EditComment(ctx context.Context, userID, commentID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentMutationResponse, error) {
	comment, err := s.findOwnedComment(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = req.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		s.logger.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update comment", err.Error())
	}

	s.feedCache.InvalidatePost(ctx, comment.PostID)

	return &dto.CommentMutationResponse{
		Message: "Comment updated successfully",
		Comment: dto.NewCommentResponse(comment),
	}, nil
}

// GetPostComments returns a post's top-level comments, newest first, with
// author previews
func (s *commentServiceImpl) GetPostComments(ctx context.Context, postID uuid.UUID) (*dto.CommentListResponse, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Post not found", "")
		}
		s.logger.Error("Failed to verify post", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify post", err.Error())
	}

	comments, err := s.commentRepo.FindTopLevelByPost(ctx, postID)
	if err != nil {
		s.logger.Error("Failed to list comments", zap.Error(err), zap.String("post_id", postID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list comments", err.Error())
	}

	items, err := s.toCommentResponses(ctx, comments)
	if err != nil {
		return nil, err
	}
	return &dto.CommentListResponse{Comments: items}, nil
}

// GetCommentReplies returns a comment's direct replies, newest first, with
// author previews
func (s *commentServiceImpl) GetCommentReplies(ctx context.Context, commentID uuid.UUID) (*dto.ReplyListResponse, error) {
	if _, err := s.findComment(ctx, commentID); err != nil {
		return nil, err
	}

	replies, err := s.commentRepo.FindRepliesByParent(ctx, commentID)
	if err != nil {
		s.logger.Error("Failed to list replies", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list replies", err.Error())
	}

	items, err := s.toCommentResponses(ctx, replies)
	if err != nil {
		return nil, err
	}
	return &dto.ReplyListResponse{Replies: items}, nil
}

// DeleteComment removes a comment and its subtree in one transaction, in
// this order: likes of the comment, likes of its replies, the replies, the
// comment itself.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) (*dto.DeletedCommentResponse, error) {
	comment, err := s.findOwnedComment(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	snapshot := dto.NewCommentResponse(comment)

	err = s.txManager.Transaction(ctx, func(tx *gorm.DB) error {
		likeRepo := s.likeRepo.WithTx(tx)
		commentRepo := s.commentRepo.WithTx(tx)

		if err := likeRepo.DeleteCommentLikesByComment(ctx, commentID); err != nil {
			return err
		}

		replyIDs, err := commentRepo.FindReplyIDs(ctx, commentID)
		if err != nil {
			return err
		}
		if len(replyIDs) > 0 {
			if err := likeRepo.DeleteCommentLikesByComments(ctx, replyIDs); err != nil {
				return err
			}
			if err := commentRepo.DeleteByParent(ctx, commentID); err != nil {
				return err
			}
		}

		return commentRepo.Delete(ctx, commentID)
	})
	if err != nil {
		s.logger.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete comment", err.Error())
	}

	s.feedCache.InvalidatePost(ctx, comment.PostID)
	s.metrics.RecordCascadeDelete("comment")
	s.logger.Info("Comment deleted",
		zap.String("comment_id", commentID.String()),
		zap.String("user_id", userID.String()),
	)

	return &dto.DeletedCommentResponse{
		Message:        "Comment deleted successfully",
		DeletedComment: snapshot,
	}, nil
}

// findComment fetches a comment, mapping a missing row to NotFound
func (s *commentServiceImpl) findComment(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		s.logger.Error("Failed to fetch comment", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment", err.Error())
	}
	return comment, nil
}

// findOwnedComment fetches a comment and verifies the caller authored it
func (s *commentServiceImpl) findOwnedComment(ctx context.Context, userID, commentID uuid.UUID) (*domain.Comment, error) {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the author can modify this comment", "")
	}
	return comment, nil
}

// toCommentResponses attaches author previews to a list of comments
func (s *commentServiceImpl) toCommentResponses(ctx context.Context, comments []*domain.Comment) ([]*dto.CommentResponse, error) {
	ids := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	previews, err := loadUserPreviews(ctx, s.userRepo, ids)
	if err != nil {
		s.logger.Error("Failed to load author previews", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load authors", err.Error())
	}

	items := make([]*dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp := dto.NewCommentResponse(c)
		if preview, ok := previews[c.UserID]; ok {
			resp.User = preview
		}
		items = append(items, resp)
	}
	return items, nil
}
