package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"report_manager/internal/reports"
)

const keyPrefix = "reports:"

// Client caches report collections in Redis. Entries carry a TTL (60
// seconds unless configured otherwise); InvalidateReports is the single
// entry point that drops every cached collection after a mutation.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Initialize(redisURL string, ttl time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// UserKey and AdminKey build the cache keys for the two fetch modes.
func UserKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// AdminKey is order-insensitive so the same user set always hits the
// same entry.
func AdminKey(userIDs []uint) string {
	sorted := make([]uint, len(userIDs))
	copy(sorted, userIDs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	key := "admin"
	for _, id := range sorted {
		key += fmt.Sprintf(":%d", id)
	}
	return key
}

// GetCollection returns a cached collection. Misses, transport errors
// and malformed payloads all read as a miss; the caller falls back to
// the database either way, so the errors are only logged.
func (c *Client) GetCollection(key string) (reports.Collection, bool) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: failed to get %s: %v", key, err)
		}
		return nil, false
	}

	var col reports.Collection
	if err := json.Unmarshal([]byte(val), &col); err != nil {
		log.Printf("cache: discarding malformed entry %s: %v", key, err)
		return nil, false
	}
	return col, true
}

func (c *Client) SetCollection(key string, col reports.Collection) {
	ctx := context.Background()
	jsonData, err := json.Marshal(col)
	if err != nil {
		log.Printf("cache: failed to marshal %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, jsonData, c.ttl).Err(); err != nil {
		log.Printf("cache: failed to set %s: %v", key, err)
	}
}

// InvalidateReports drops every cached collection. Mutations call this
// synchronously before returning so the next read cannot see stale data.
func (c *Client) InvalidateReports() {
	ctx := context.Background()
	keys, err := c.rdb.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		log.Printf("cache: failed to list keys for invalidation: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: failed to invalidate: %v", err)
	}
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
