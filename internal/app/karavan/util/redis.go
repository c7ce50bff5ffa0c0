package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"karavan/internal/app/karavan/entity"
	"karavan/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	rateSnapshotCacheKey = "exchange_rates:latest"
	categoriesCacheKey   = "categories:all"
)

// RedisClient wraps the shared cache: the latest exchange-rate snapshot and
// the category list.
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// NewRedisClientFromExisting wraps an already configured client (tests).
func NewRedisClientFromExisting(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// SetRateSnapshot stores the snapshot for other instances, with a TTL so a
// dead fetcher cannot pin stale rates forever.
func (r *RedisClient) SetRateSnapshot(ctx context.Context, snapshot *entity.ExchangeRateSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal rate snapshot: %w", err)
	}

	if err := r.client.Set(ctx, rateSnapshotCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(metrics.ServiceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set rate snapshot in cache: %w", err)
	}

	return nil
}

// GetRateSnapshot returns the cached snapshot, or nil on a cache miss.
func (r *RedisClient) GetRateSnapshot(ctx context.Context) (*entity.ExchangeRateSnapshot, error) {
	data, err := r.client.Get(ctx, rateSnapshotCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(metrics.ServiceName, "exchange_rates")
			return nil, nil
		}
		metrics.RecordRedisError(metrics.ServiceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get rate snapshot from cache: %w", err)
	}

	var snapshot entity.ExchangeRateSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rate snapshot: %w", err)
	}

	metrics.RecordCacheHit(metrics.ServiceName, "exchange_rates")
	return &snapshot, nil
}

func (r *RedisClient) SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	if err := r.client.Set(ctx, categoriesCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(metrics.ServiceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set categories in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) GetCategories(ctx context.Context) ([]entity.Category, error) {
	data, err := r.client.Get(ctx, categoriesCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(metrics.ServiceName, "categories")
			return nil, nil
		}
		metrics.RecordRedisError(metrics.ServiceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get categories from cache: %w", err)
	}

	var categories []entity.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}

	metrics.RecordCacheHit(metrics.ServiceName, "categories")
	return categories, nil
}

func (r *RedisClient) DeleteCategories(ctx context.Context) error {
	if err := r.client.Del(ctx, categoriesCacheKey).Err(); err != nil {
		metrics.RecordRedisError(metrics.ServiceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete categories from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
