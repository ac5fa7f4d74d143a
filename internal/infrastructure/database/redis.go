package database

import (
	"context"
	"fmt"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/config"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewRedisClient connects to the redis instance used as the local store.
// Unlike the cloud database it has to answer at startup.
func NewRedisClient(cfg *config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Connected to redis local store", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return client, nil
}
