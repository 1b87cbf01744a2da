package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinicbook/models"
	"clinicbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityCache is a short-TTL cache of computed day availability, keyed
// by (departmentID, date). Cached entries are read-only snapshots for the
// read path; the commit path never consults them.
type AvailabilityCache interface {
	Get(ctx context.Context, departmentID, date string) (*models.DayAvailability, bool)
	Set(ctx context.Context, departmentID, date string, avail *models.DayAvailability)
	Invalidate(ctx context.Context, departmentID, date string)
}

// RedisAvailabilityCache backs AvailabilityCache with the shared Redis client.
type RedisAvailabilityCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisAvailabilityCache builds a cache on the global cache client.
func NewRedisAvailabilityCache(ttl time.Duration) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{Client: utils.GetCacheClient(), TTL: ttl}
}

func availabilityCacheKey(departmentID, date string) string {
	return fmt.Sprintf("availability:%s:%s", departmentID, date)
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, departmentID, date string) (*models.DayAvailability, bool) {
	data, err := c.Client.Get(ctx, availabilityCacheKey(departmentID, date)).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("availability cache get failed",
				zap.String("department", departmentID), zap.String("date", date), zap.Error(err))
		}
		return nil, false
	}
	var avail models.DayAvailability
	if err := json.Unmarshal([]byte(data), &avail); err != nil {
		return nil, false
	}
	return &avail, true
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, departmentID, date string, avail *models.DayAvailability) {
	data, err := json.Marshal(avail)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, availabilityCacheKey(departmentID, date), data, c.TTL).Err(); err != nil {
		utils.GetLogger().Warn("availability cache set failed",
			zap.String("department", departmentID), zap.String("date", date), zap.Error(err))
	}
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, departmentID, date string) {
	if err := c.Client.Del(ctx, availabilityCacheKey(departmentID, date)).Err(); err != nil {
		utils.GetLogger().Warn("availability cache invalidate failed",
			zap.String("department", departmentID), zap.String("date", date), zap.Error(err))
	}
}

// NoopAvailabilityCache disables caching; used in tests and as a safe default.
type NoopAvailabilityCache struct{}

func (NoopAvailabilityCache) Get(context.Context, string, string) (*models.DayAvailability, bool) {
	return nil, false
}
func (NoopAvailabilityCache) Set(context.Context, string, string, *models.DayAvailability) {}
func (NoopAvailabilityCache) Invalidate(context.Context, string, string)                   {}
