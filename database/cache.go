package database

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"pqapi/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

const cacheTTL = 30 * time.Second

// InitRedis connects the cache client. The cache is an optimization only:
// when redis is unreachable the handlers fall through to the database.
func InitRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Printf("Redis unavailable, caching disabled: %v", err)
		RDB = nil
		return
	}

	log.Println("Redis connection established")
}

// GetFromCache reads a JSON value from the cache into dest.
// Returns false on a miss or when caching is disabled.
func GetFromCache(ctx context.Context, key string, dest interface{}) (bool, error) {
	if RDB == nil {
		return false, nil
	}
	raw, err := RDB.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetToCache stores a JSON value with the default TTL
func SetToCache(ctx context.Context, key string, value interface{}) error {
	if RDB == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RDB.Set(ctx, key, raw, cacheTTL).Err()
}

// InvalidateCache drops a cached key, e.g. after a submission changes a
// challenge's leaderboard
func InvalidateCache(ctx context.Context, key string) {
	if RDB == nil {
		return
	}
	if err := RDB.Del(ctx, key).Err(); err != nil {
		log.Printf("Failed to invalidate cache key %s: %v", key, err)
	}
}
