package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"social-feed-api/internal/dto"
)

const postKeyPrefix = "feed:post:"

// FeedCache caches enriched single-post pages in Redis. Every method
// degrades to a no-op when Redis is unavailable: the feed is always served
// from the database on a miss, so cache failures are logged at debug and
// never surfaced.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewFeedCache creates a new feed cache. A nil client disables caching.
func NewFeedCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *FeedCache {
	return &FeedCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetPost returns the cached enriched post, if any
func (c *FeedCache) GetPost(ctx context.Context, postID uuid.UUID) (*dto.FeedPostResponse, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, postKeyPrefix+postID.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("Feed cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var post dto.FeedPostResponse
	if err := json.Unmarshal(data, &post); err != nil {
		c.logger.Debug("Feed cache entry corrupt, dropping", zap.Error(err))
		c.client.Del(ctx, postKeyPrefix+postID.String())
		return nil, false
	}
	return &post, true
}

// SetPost stores an enriched post with the configured TTL
func (c *FeedCache) SetPost(ctx context.Context, postID uuid.UUID, post *dto.FeedPostResponse) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(post)
	if err != nil {
		c.logger.Debug("Feed cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, postKeyPrefix+postID.String(), data, c.ttl).Err(); err != nil {
		c.logger.Debug("Feed cache write failed", zap.Error(err))
	}
}

// InvalidatePost drops the cached page for a post after any mutation
// touching the post, its comments or its likes
func (c *FeedCache) InvalidatePost(ctx context.Context, postID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, postKeyPrefix+postID.String()).Err(); err != nil {
		c.logger.Debug("Feed cache invalidation failed", zap.Error(err))
	}
}
