package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/geomashup/geofeed-backend/internal/pkg/logger"
	"github.com/geomashup/geofeed-backend/internal/pkg/redis"
	"github.com/geomashup/geofeed-backend/internal/query/biz"
	"github.com/geomashup/geofeed-backend/internal/query/types"
	"go.uber.org/zap"
)

const resultKeyPrefix = "geofeed:search:"

// resultRetention bounds how long a superseded entry can linger in redis.
// Freshness is always decided by the reader against FetchedAt; the redis
// expiry only keeps dead slots from accumulating.
const resultRetention = 24 * time.Hour

// RedisResultCacheRepo stores one CachedResult per normalized search key.
type RedisResultCacheRepo struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisResultCacheRepo creates the redis-backed result cache
func NewRedisResultCacheRepo(client *redis.Client, log *logger.Logger) biz.ResultCacheRepo {
	if log == nil {
		log = logger.L()
	}
	return &RedisResultCacheRepo{client: client, logger: log}
}

// Get returns the entry for key, or (nil, nil) when the slot was never
// written. An unreadable slot is treated as absent, not as a failure.
func (r *RedisResultCacheRepo) Get(ctx context.Context, key string) (*types.CachedResult, error) {
	data, err := r.client.Get(ctx, resultKeyPrefix+key)
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read result cache: %w", err)
	}

	var result types.CachedResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		r.logger.Warn("unreadable result cache entry, treating as absent",
			zap.String("key", key), zap.Error(err))
		return nil, nil
	}

	return &result, nil
}

// Put overwrites the slot for result.Key. Empty item sets are never
// written so a transient zero-result response cannot poison the slot.
func (r *RedisResultCacheRepo) Put(ctx context.Context, result *types.CachedResult) error {
	if result == nil || len(result.Items) == 0 {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal cached result: %w", err)
	}

	return r.client.Set(ctx, resultKeyPrefix+result.Key, string(data), resultRetention)
}
