// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application startup.
var Rdb *redis.Client

// InvalidateChannel is the pub/sub channel the rendering layer subscribes to
// for path invalidation.
var InvalidateChannel = "rage_invalidate"

// InvalidationRecord tells the rendering/cache layer which paths must be
// re-rendered after a mutation.
type InvalidationRecord struct {
	Paths     []string `json:"paths"`
	Timestamp int64    `json:"timestamp"`
}

// ConnectRedis initializes the global Redis client with environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
func ConnectRedis() error {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// PublishInvalidation signals the rendering layer that the given paths are
// stale. Fire-and-forget from the caller's perspective: a failed publish
// must never fail the mutation that triggered it.
func PublishInvalidation(ctx context.Context, paths ...string) error {
	if Rdb == nil || len(paths) == 0 {
		return nil
	}
	record := InvalidationRecord{Paths: paths, Timestamp: time.Now().Unix()}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal InvalidationRecord: %w", err)
	}
	channel := getEnv("INVALIDATE_CHANNEL", InvalidateChannel)
	if err := Rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel '%s': %w", channel, err)
	}
	return nil
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
