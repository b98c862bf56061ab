package redis_client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects and pings the Redis used for the chat relay.
// The relay traffic is light, so the default pool size is enough.
func NewRedisClient(host string, port int) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", host, port),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rc.Ping(ctx).Result(); err != nil {
		err = errors.New("Redis connection failed: " + err.Error())
		zap.L().Error("redis_connect", zap.Error(err))
		return nil, err
	}
	return rc, nil
}
