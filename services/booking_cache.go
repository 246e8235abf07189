package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"uninest/services/logger"

	"github.com/redis/go-redis/v9"
)

const bookingListKeyPrefix = "bookings:list:"
const bookingListTTL = time.Minute

// BookingListCache caches per-actor booking pages. Lookups are best
// effort; a broken cache must never fail a request.
type BookingListCache interface {
	GetList(ctx context.Context, key string, target interface{}) bool
	SetList(ctx context.Context, key string, value interface{})
	InvalidateLists(ctx context.Context)
}

// bookingListKey builds the cache key of one actor's page.
func bookingListKey(actor Actor, status string, page, limit int) string {
	return fmt.Sprintf("%s%d:%d:%s:%d:%d", bookingListKeyPrefix, actor.ID, actor.Role, status, page, limit)
}

// RedisBookingCache implements BookingListCache on the shared client.
type RedisBookingCache struct {
	rdb *redis.Client
	log logger.Logger
}

func NewRedisBookingCache(rdb *redis.Client, log logger.Logger) *RedisBookingCache {
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &RedisBookingCache{rdb: rdb, log: log}
}

func (c *RedisBookingCache) GetList(ctx context.Context, key string, target interface{}) bool {
	if c.rdb == nil {
		return false
	}
	cached, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), target); err != nil {
		c.log.Error("decode cached booking page %s: %v", key, err)
		return false
	}
	return true
}

func (c *RedisBookingCache) SetList(ctx context.Context, key string, value interface{}) {
	if c.rdb == nil {
		return
	}
	if err := SetToRedis(ctx, c.rdb, key, value, bookingListTTL); err != nil {
		c.log.Error("cache booking page %s: %v", key, err)
	}
}

// InvalidateLists drops every cached booking page. Any transition or new
// booking can change several actors' lists at once, so the whole prefix
// goes.
func (c *RedisBookingCache) InvalidateLists(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := DeleteFromRedisByPattern(ctx, c.rdb, bookingListKeyPrefix+"*"); err != nil {
		c.log.Error("invalidate booking pages: %v", err)
	}
}

var _ BookingListCache = (*RedisBookingCache)(nil)
