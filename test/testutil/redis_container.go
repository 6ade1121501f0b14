package testutil

import (
	"context"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
)

type RedisContainerInfo struct {
	Addr    string
	Cleanup func()
}

func StartRedisContainer() (*RedisContainerInfo, error) {
	addr, purge, err := start(service{
		name: "redis",
		opts: dockertest.RunOptions{Repository: "redis", Tag: "7-alpine"},
		port: "6379/tcp",
		ready: func(ctx context.Context, hostPort string) error {
			rdb := redis.NewClient(&redis.Options{Addr: hostPort})
			defer func() { _ = rdb.Close() }()
			return rdb.Ping(ctx).Err()
		},
	})
	if err != nil {
		return nil, err
	}
	return &RedisContainerInfo{Addr: addr, Cleanup: purge}, nil
}
