package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the redirect cache. The service runs fine without
// it; callers treat a connection error as "no cache".
func InitRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	return rdb, nil
}
