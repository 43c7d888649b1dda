package database

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/accounts/internal/config"
)

// InitRedis returns nil when Redis is unreachable. Settlement export and the
// validation bridge are then disabled; postings still work.
func InitRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection failed, continuing without Redis: %v", err)
		rdb.Close()
		return nil
	}

	log.Println("Redis connection established")
	return rdb
}
