// File: cocoti/utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"cocoti/config"

	"github.com/go-redis/redis/v8"
)

// SessionClient is the Redis client backing the admin session token store.
var SessionClient *redis.Client

// InitSessionCache initializes the Redis client for admin session storage
// (using the DB from AppConfig reserved for sessions).
func InitSessionCache() {
	SessionClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionClient returns the Redis client for admin session storage.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		InitSessionCache()
	}
	return SessionClient
}
