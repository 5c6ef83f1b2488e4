// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"roombooking/config"

	"github.com/go-redis/redis/v8"
)

// NewLedgerRedisClient connects to the Redis DB that holds the booking ledger.
func NewLedgerRedisClient() (*redis.Client, error) {
	return newRedisClient(config.AppConfig.RedisLedgerDB)
}

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (db %d): %w", db, err)
	}
	return client, nil
}
