package codegen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 1 * time.Hour

// Cache stores generated results in Redis keyed by project id and the
// project's updated_at timestamp. Any project or component mutation bumps
// updated_at, so stale entries are never served; they simply age out via TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: cacheTTL}
}

func cacheKey(projectID uuid.UUID, updatedAt time.Time) string {
	return fmt.Sprintf("codegen:%s:%d", projectID.String(), updatedAt.UnixNano())
}

// Get returns the cached result for the project snapshot, or nil on a miss.
func (c *Cache) Get(ctx context.Context, projectID uuid.UUID, updatedAt time.Time) (*Result, error) {
	data, err := c.client.Get(ctx, cacheKey(projectID, updatedAt)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read codegen cache: %w", err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, nil
	}
	return &result, nil
}

// Set stores the result for the project snapshot with a TTL.
func (c *Cache) Set(ctx context.Context, projectID uuid.UUID, updatedAt time.Time, result *Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal codegen result: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(projectID, updatedAt), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write codegen cache: %w", err)
	}
	return nil
}
