// Package cache provides a small Redis-backed read-through cache for the admin
// per-user order listing. When Redis is not configured the cache is a no-op
// and callers fall through to the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/models"
)

const UserOrdersTTL = 5 * time.Minute

var client *redis.Client

// Init connects to Redis. An empty addr leaves the cache disabled.
func Init(addr, password string) error {
	if addr == "" {
		log.Println("[CACHE] [INFO] REDIS_ADDR not set, cache disabled")
		return nil
	}

	client = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client = nil
		return fmt.Errorf("redis connect failed: %w", err)
	}

	log.Println("[CACHE] [INFO] redis connected:", addr)
	return nil
}

// Close releases the Redis connection.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

func userOrdersKey(userID string) string {
	return "user_orders:" + userID
}

// GetUserOrders returns the cached order listing for a user, or ok=false on a
// miss, a decode failure, or when the cache is disabled.
func GetUserOrders(ctx context.Context, userID string) ([]models.Order, bool) {
	if client == nil {
		return nil, false
	}

	data, err := client.Get(ctx, userOrdersKey(userID)).Result()
	if err != nil {
		return nil, false
	}

	var orders []models.Order
	if err := json.Unmarshal([]byte(data), &orders); err != nil {
		log.Println("[CACHE] [ERROR] user orders decode failed:", err)
		return nil, false
	}
	return orders, true
}

// SetUserOrders caches a user's order listing. Failures are logged, not fatal.
func SetUserOrders(ctx context.Context, userID string, orders []models.Order) {
	if client == nil {
		return
	}

	data, err := json.Marshal(orders)
	if err != nil {
		log.Println("[CACHE] [ERROR] user orders encode failed:", err)
		return
	}
	if err := client.Set(ctx, userOrdersKey(userID), data, UserOrdersTTL).Err(); err != nil {
		log.Println("[CACHE] [ERROR] user orders set failed:", err)
	}
}

// InvalidateUserOrders drops the cached listing after a status change.
func InvalidateUserOrders(ctx context.Context, userID string) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, userOrdersKey(userID)).Err(); err != nil {
		log.Println("[CACHE] [ERROR] user orders invalidate failed:", err)
	}
}
