package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"emotion-monitor/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	resultKeyPrefix = "emotion:result:"
	latestKey       = "emotion:result:latest"
	recentListKey   = "emotion:results:recent"
)

// ErrNotFound is returned when no result has been stored yet.
var ErrNotFound = errors.New("result not found")

// RedisClient publishes emitted results for other consumers. It is write-mostly:
// the monitor never reloads its buffers from it.
type RedisClient struct {
	client      *redis.Client
	ttl         time.Duration
	historySize int64
}

func NewRedisClient(ctx context.Context, addr string, ttl time.Duration, historySize int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisClient{
		client:      client,
		ttl:         ttl,
		historySize: int64(historySize),
	}, nil
}

func (r *RedisClient) Publish(ctx context.Context, result models.Result) error {
	key := resultKeyPrefix + result.ID

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, r.ttl)
	pipe.Set(ctx, latestKey, result.ID, r.ttl)
	pipe.LPush(ctx, recentListKey, result.ID)
	pipe.LTrim(ctx, recentListKey, 0, r.historySize-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store result in Redis: %w", err)
	}

	return nil
}

func (r *RedisClient) Latest(ctx context.Context) (models.Result, error) {
	id, err := r.client.Get(ctx, latestKey).Result()
	if errors.Is(err, redis.Nil) {
		return models.Result{}, ErrNotFound
	}
	if err != nil {
		return models.Result{}, fmt.Errorf("failed to get latest result id: %w", err)
	}

	result, err := r.get(ctx, resultKeyPrefix+id)
	if errors.Is(err, redis.Nil) {
		return models.Result{}, ErrNotFound
	}
	return result, err
}

// Recent returns up to count results, oldest first. Expired entries are skipped.
func (r *RedisClient) Recent(ctx context.Context, count int) ([]models.Result, error) {
	ids, err := r.client.LRange(ctx, recentListKey, 0, int64(count)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent result ids: %w", err)
	}

	results := make([]models.Result, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		result, err := r.get(ctx, resultKeyPrefix+ids[i])
		if err != nil {
			continue
		}
		results = append(results, result)
	}

	return results, nil
}

func (r *RedisClient) get(ctx context.Context, key string) (models.Result, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return models.Result{}, err
	}

	var result models.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return models.Result{}, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return result, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
