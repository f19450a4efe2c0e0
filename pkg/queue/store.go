// Package queue provides the Redis-backed view of the ticket priority
// queues. The agent never consumes from the queues here; it only reads
// their depth for the queue_depth gauges and pings the server for the
// health check.
package queue

import (
	"context"
	"fmt"

	"helpdesk-hq/agentd/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Priority names used as gauge labels.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// redisClient is the slice of the go-redis API the store needs.
// *redis.Client satisfies it; tests inject a fake.
type redisClient interface {
	LLen(ctx context.Context, key string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Store reads ticket queue depths from Redis lists.
type Store struct {
	client redisClient

	// keys maps priority -> Redis list key
	keys map[string]string
}

// New creates a queue store from the Redis configuration.
func New(cfg *config.RedisConfig) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	return &Store{
		client: redis.NewClient(opts),
		keys:   priorityKeys(cfg.Queues),
	}, nil
}

func priorityKeys(q config.QueueKeys) map[string]string {
	return map[string]string{
		PriorityHigh:   q.High,
		PriorityMedium: q.Medium,
		PriorityLow:    q.Low,
	}
}

// Depth returns the number of tickets waiting in one list.
func (s *Store) Depth(ctx context.Context, key string) (int64, error) {
	depth, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("llen %s: %w", key, err)
	}
	return depth, nil
}

// Depths returns pending ticket counts keyed by priority. The first
// failed read aborts the snapshot so callers never see a mix of fresh
// and stale values.
func (s *Store) Depths(ctx context.Context) (map[string]int64, error) {
	depths := make(map[string]int64, len(s.keys))
	for priority, key := range s.keys {
		depth, err := s.Depth(ctx, key)
		if err != nil {
			return nil, err
		}
		depths[priority] = depth
	}
	return depths, nil
}

// Ping verifies connectivity for the health check.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
