package database

import (
	"context"
	"log"

	"content-backend/config"

	"github.com/redis/go-redis/v9"
)

// Redis is the optional cache client. It stays nil when REDIS_ADDR is not
// configured; every caller must nil-guard.
var Redis *redis.Client

// InitRedis connects the cache client if an address is configured.
func InitRedis(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		log.Println("Redis not configured, summary caching disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable at %s, continuing without cache: %v", cfg.RedisAddr, err)
		return
	}

	Redis = client
	log.Printf("Redis cache connected at %s", cfg.RedisAddr)
}

// GetRedis returns the cache client, which may be nil.
func GetRedis() *redis.Client {
	return Redis
}
