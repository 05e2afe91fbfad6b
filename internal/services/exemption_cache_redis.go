package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/types/business"
)

// Tag generations outlive any entry stamped with them.
const tagGenerationTTL = 24 * time.Hour

type redisCacheEntry struct {
	Decision business.ExemptionDecision `json:"decision"`
	Stamp    interfaces.CacheStamp      `json:"stamp"`
}

// RedisExemptionCache shares exemption decisions across API instances.
type RedisExemptionCache struct {
	client *redis.Client
}

// NewRedisExemptionCache connects to the Redis instance at redisURL.
func NewRedisExemptionCache(ctx context.Context, redisURL string) (*RedisExemptionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisExemptionCache{client: client}, nil
}

// NewRedisExemptionCacheFromClient wraps an existing client.
func NewRedisExemptionCacheFromClient(client *redis.Client) *RedisExemptionCache {
	return &RedisExemptionCache{client: client}
}

// Close closes the Redis connection
func (c *RedisExemptionCache) Close() error {
	return c.client.Close()
}

func tagGenerationKey(tag string) string {
	return exemptionCachePrefix + ":gen:" + tag
}

type multiGetter interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

func (c *RedisExemptionCache) readStamp(ctx context.Context, cmd multiGetter, tags []string) (interfaces.CacheStamp, error) {
	stamp := make(interfaces.CacheStamp, len(tags))
	if len(tags) == 0 {
		return stamp, nil
	}
	keys := make([]string, len(tags))
	for i, tag := range tags {
		keys[i] = tagGenerationKey(tag)
	}
	values, err := cmd.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		stamp[tags[i]] = 0
		if s, ok := v.(string); ok {
			gen, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("corrupt generation for tag %s: %w", tags[i], err)
			}
			stamp[tags[i]] = gen
		}
	}
	return stamp, nil
}

// Lookup returns the cached decision if its stamp matches the current tag generations.
func (c *RedisExemptionCache) Lookup(ctx context.Context, key string, tags []string) (*business.ExemptionDecision, interfaces.CacheStamp, error) {
	stamp, err := c.readStamp(ctx, c.client, tags)
	if err != nil {
		return nil, nil, err
	}

	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, stamp, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var entry redisCacheEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, nil, err
	}
	if !stampsEqual(entry.Stamp, stamp) {
		return nil, stamp, nil
	}
	return &entry.Decision, stamp, nil
}

// Store writes the entry only if no tag generation moved since stamp was
// taken. The generation keys are watched so a concurrent InvalidateTag aborts
// the write.
func (c *RedisExemptionCache) Store(ctx context.Context, key string, stamp interfaces.CacheStamp, decision business.ExemptionDecision, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(redisCacheEntry{Decision: decision, Stamp: stamp})
	if err != nil {
		return err
	}

	tags := make([]string, 0, len(stamp))
	watched := make([]string, 0, len(stamp))
	for tag := range stamp {
		tags = append(tags, tag)
		watched = append(watched, tagGenerationKey(tag))
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := c.readStamp(ctx, tx, tags)
		if err != nil {
			return err
		}
		if !stampsEqual(stamp, current) {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		return err
	}, watched...)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate drops a single entry.
func (c *RedisExemptionCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// InvalidateTag bumps the tag generation, staling every entry stamped with it.
func (c *RedisExemptionCache) InvalidateTag(ctx context.Context, tag string) error {
	key := tagGenerationKey(tag)
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, tagGenerationTTL)
	_, err := pipe.Exec(ctx)
	return err
}
