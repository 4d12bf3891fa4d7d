package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisGenerator is a Generator backed by Redis INCR, for multi-instance
// deployments where the counter must be shared across processes. The key
// carries a TTL slightly past one calendar day so stale counters are
// reclaimed without an explicit cleanup job.
type RedisGenerator struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisGenerator constructs a RedisGenerator using the given client.
func NewRedisGenerator(client *redis.Client, keyPrefix string) *RedisGenerator {
	return &RedisGenerator{client: client, prefix: keyPrefix, ttl: 26 * time.Hour}
}

// Next atomically increments the (kind, day) counter in Redis.
func (g *RedisGenerator) Next(ctx context.Context, kind Kind, day string) (string, error) {
	key := fmt.Sprintf("%s:numbering:%s:%s", g.prefix, kind, day)
	seq, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("numbering: redis incr: %w", err)
	}
	if seq == 1 {
		g.client.Expire(ctx, key, g.ttl)
	}
	return format(kind, day, seq), nil
}
