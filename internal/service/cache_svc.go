package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Recent-feed pages are short-lived because new posts should
// surface quickly; video details are invalidated explicitly.
const (
	VideoCacheTTL = 5 * time.Minute
	FeedCacheTTL  = time.Minute
)

// CacheService provides a Redis cache-aside layer for video lookups and
// the anonymous feed.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or
// the connection fails, it returns a CacheService with a nil client and
// cache operations become no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetVideo retrieves a cached video response. Returns nil if not cached
// or cache is disabled.
func (c *CacheService) GetVideo(ctx context.Context, videoID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, videoKey(videoID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetVideo stores a video response in cache.
func (c *CacheService) SetVideo(ctx context.Context, videoID string, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, videoKey(videoID), b, VideoCacheTTL).Err()
}

// InvalidateVideo removes a video from cache (called after engagement
// changes).
func (c *CacheService) InvalidateVideo(ctx context.Context, videoID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, videoKey(videoID)).Err()
}

// GetRecentFeedPage retrieves a cached anonymous feed page. Returns nil
// on miss or when cache is disabled.
func (c *CacheService) GetRecentFeedPage(ctx context.Context, page, pageSize int) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, feedKey(page, pageSize)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetRecentFeedPage stores an anonymous feed page. The short TTL bounds
// staleness after new posts.
func (c *CacheService) SetRecentFeedPage(ctx context.Context, page, pageSize int, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, feedKey(page, pageSize), b, FeedCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func videoKey(videoID string) string {
	return fmt.Sprintf("video:%s", videoID)
}

func feedKey(page, pageSize int) string {
	return fmt.Sprintf("feed:recent:%d:%d", page, pageSize)
}
