package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// FeedCache keeps the first page of each community's post feed in Redis.
// Optional: a nil *FeedCache disables caching and every method no-ops.
// Misses and Redis errors both fall through to Mongo; the cache is never
// authoritative.
type FeedCache struct {
	r   *redis.Client
	ttl time.Duration
}

func NewFeedCache(ctx context.Context, addr string) (*FeedCache, error) {
	r := redis.NewClient(&redis.Options{Addr: addr})
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &FeedCache{r: r, ttl: 30 * time.Second}, nil
}

func feedKey(communityID bson.ObjectID) string {
	return "feed:" + communityID.Hex()
}

// Get returns the cached first-page JSON, or nil on miss/error/disabled.
func (fc *FeedCache) Get(ctx context.Context, communityID bson.ObjectID) []byte {
	if fc == nil {
		return nil
	}
	b, err := fc.r.Get(ctx, feedKey(communityID)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		slog.Warn("feed cache get failed", "community_id", communityID.Hex(), "error", err)
		return nil
	}
	return b
}

// Set stores the rendered first page with a short TTL.
func (fc *FeedCache) Set(ctx context.Context, communityID bson.ObjectID, body []byte) {
	if fc == nil {
		return
	}
	if err := fc.r.Set(ctx, feedKey(communityID), body, fc.ttl).Err(); err != nil {
		slog.Warn("feed cache set failed", "community_id", communityID.Hex(), "error", err)
	}
}

// Invalidate drops the cached page after a write to the community's feed.
func (fc *FeedCache) Invalidate(ctx context.Context, communityID bson.ObjectID) {
	if fc == nil {
		return
	}
	if err := fc.r.Del(ctx, feedKey(communityID)).Err(); err != nil {
		slog.Warn("feed cache invalidate failed", "community_id", communityID.Hex(), "error", err)
	}
}

func (fc *FeedCache) Close() error {
	if fc == nil {
		return nil
	}
	return fc.r.Close()
}
