package redis

import (
	"context"
	"fmt"
	"time"

	"leo-chat/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewClient creates a new Redis client instance.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// WaitReady pings Redis until it answers or ctx is done. Failures are logged and retried.
func WaitReady(ctx context.Context, client *redis.Client, interval time.Duration, l *logger.Logger) error {
	for {
		err := client.Ping(ctx).Err()
		if err == nil {
			l.Infof("redis connection established")
			return nil
		}
		l.Errorf("redis not ready, retrying in %s: %v", interval, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
