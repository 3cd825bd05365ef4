package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anto1/ds-survey/internal/model"
)

// Cache TTLs. The channel list changes only on moderation; stats are also
// refreshed eagerly by the stats worker.
const (
	ChannelListCacheTTL = 15 * time.Minute
	StatsCacheTTL       = 5 * time.Minute
)

const (
	channelListKey = "channels:approved"
	statsKey       = "stats:dashboard"
)

// CacheService provides a Redis cache-aside layer for the approved channel
// list and the dashboard aggregates.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
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

// GetChannelList retrieves the cached approved channel list. Returns nil
// when not cached or the cache is disabled.
func (c *CacheService) GetChannelList(ctx context.Context) ([]model.Channel, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, channelListKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var channels []model.Channel
	if err := json.Unmarshal(data, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// SetChannelList stores the approved channel list.
func (c *CacheService) SetChannelList(ctx context.Context, channels []model.Channel) error {
	if c.rdb == nil {
		return nil
	}
	data, err := json.Marshal(channels)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, channelListKey, data, ChannelListCacheTTL).Err()
}

// InvalidateChannelList drops the cached channel list after moderation.
func (c *CacheService) InvalidateChannelList(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, channelListKey).Err()
}

// GetStats retrieves the cached dashboard aggregates. Returns nil when not
// cached or the cache is disabled.
func (c *CacheService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats model.StatsResponse
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetStats stores the dashboard aggregates.
func (c *CacheService) SetStats(ctx context.Context, stats *model.StatsResponse) error {
	if c.rdb == nil {
		return nil
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, data, StatsCacheTTL).Err()
}
