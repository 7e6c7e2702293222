package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to redis from a redis:// URL or a bare host:port.
// The client is only a resolution-path cache; callers tolerate a nil client.
func InitRedis(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	rdb := redis.NewClient(opt)

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return rdb, nil
}
