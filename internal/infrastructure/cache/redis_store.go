package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"fad/internal/domain/entity"
	"fad/pkg/logger"
)

const (
	dashboardStatsKey      = "fad:dashboard:stats"
	dashboardGenerationKey = "fad:dashboard:generation"
	ActivityChannel        = "fad:activity"
)

// RedisStore caches dashboard counts and carries the activity feed between
// API instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (s *RedisStore) GetStats(ctx context.Context) (*entity.DashboardStats, int64, bool) {
	values, err := s.client.MGet(ctx, dashboardStatsKey, dashboardGenerationKey).Result()
	if err != nil {
		logger.Warn("Dashboard cache read failed: %v", err)
		return nil, -1, false
	}

	var generation int64
	if raw, ok := values[1].(string); ok {
		if generation, err = strconv.ParseInt(raw, 10, 64); err != nil {
			logger.Warn("Dashboard cache generation is corrupt: %v", err)
			return nil, -1, false
		}
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, generation, false
	}

	var stats entity.DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		logger.Warn("Dashboard cache entry is corrupt: %v", err)
		return nil, generation, false
	}
	return &stats, generation, true
}

// SetStats writes only while the generation is unchanged. WATCH aborts the
// write when an invalidation lands in between.
func (s *RedisStore) SetStats(ctx context.Context, stats *entity.DashboardStats, generation int64) {
	if s.ttl <= 0 || generation < 0 {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, dashboardGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, dashboardStatsKey, raw, s.ttl)
			return nil
		})
		return err
	}, dashboardGenerationKey)
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		logger.Warn("Dashboard cache write failed: %v", err)
	}
}

func (s *RedisStore) InvalidateStats(ctx context.Context) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, dashboardStatsKey)
		pipe.Incr(ctx, dashboardGenerationKey)
		return nil
	})
	return err
}

func (s *RedisStore) Publish(ctx context.Context, entry *entity.ActivityLogEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, ActivityChannel, raw).Err()
}

// Subscribe calls handle for every entry published on the activity channel
// until ctx is done.
func (s *RedisStore) Subscribe(ctx context.Context, handle func(*entity.ActivityLogEntry)) {
	pubsub := s.client.Subscribe(ctx, ActivityChannel)

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()

		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var entry entity.ActivityLogEntry
				if err := json.Unmarshal([]byte(msg.Payload), &entry); err != nil {
					logger.Warn("Dropping malformed activity message: %v", err)
					continue
				}
				handle(&entry)
			case <-ctx.Done():
				return
			}
		}
	}()
}
