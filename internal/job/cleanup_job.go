package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"social-feed-api/internal/client"
	"social-feed-api/internal/repository"
)

// CleanupJob purges soft-deleted posts once they are older than the
// retention window, together with their stored images. Rows whose storage
// objects could not be removed are kept for the next run so storage never
// holds keys the database no longer knows about.
type CleanupJob struct {
	postRepo  repository.PostRepository
	storage   client.StorageClient
	retention time.Duration
	logger    *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	postRepo repository.PostRepository,
	storage client.StorageClient,
	retention time.Duration,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		postRepo:  postRepo,
		storage:   storage,
		retention: retention,
		logger:    logger,
	}
}

// Run executes the cleanup job
func (j *CleanupJob) Run() {
	ctx := context.Background()
	cutoff := time.Now().Add(-j.retention)

	j.logger.Info("Starting cleanup job for soft-deleted posts",
		zap.Time("cutoff", cutoff),
	)

	posts, err := j.postRepo.FindDeletedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to find soft-deleted posts", zap.Error(err))
		return
	}
	if len(posts) == 0 {
		j.logger.Info("No soft-deleted posts past retention")
		return
	}

	j.logger.Info("Found soft-deleted posts past retention",
		zap.Int("count", len(posts)),
	)

	successCount := 0
	failCount := 0

	for _, post := range posts {
		imagesGone := true
		for _, key := range post.ImageKeys() {
			if err := j.storage.DeleteFile(ctx, key); err != nil {
				j.logger.Error("Failed to delete image from storage",
					zap.String("post_id", post.ID.String()),
					zap.String("key", key),
					zap.Error(err),
				)
				imagesGone = false
			}
		}
		if !imagesGone {
			failCount++
			continue
		}

		if err := j.postRepo.HardDelete(ctx, post.ID); err != nil {
			j.logger.Error("Failed to hard delete post",
				zap.String("post_id", post.ID.String()),
				zap.Error(err),
			)
			failCount++
			continue
		}
		successCount++
	}

	j.logger.Info("Cleanup job completed",
		zap.Int("purged", successCount),
		zap.Int("failed", failCount),
	)
}
