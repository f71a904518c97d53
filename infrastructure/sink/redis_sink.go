package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/fixora/auditguard/domain/audit"
)

const defaultRedisTimeout = 5 * time.Second

// RedisSink appends audit lines to Redis lists named log_<Class>.log.
// RPUSH keeps prior entries, so the list is the append-only log.
type RedisSink struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisSink connects to redisURL and checks the connection
func NewRedisSink(ctx context.Context, redisURL string) (*RedisSink, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, defaultRedisTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSinkFromClient(client), nil
}

// NewRedisSinkFromClient uses an already configured client
func NewRedisSinkFromClient(client *redis.Client) *RedisSink {
	return &RedisSink{client: client, timeout: defaultRedisTimeout}
}

func (s *RedisSink) AppendLine(className, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	key := audit.LogName(className)
	if err := s.client.RPush(ctx, key, text).Err(); err != nil {
		return fmt.Errorf("append audit log %s: %w", key, err)
	}
	return nil
}

// Lines reads back the log for className
func (s *RedisSink) Lines(ctx context.Context, className string) ([]string, error) {
	return s.client.LRange(ctx, audit.LogName(className), 0, -1).Result()
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}
