package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voltcare/models"
	"voltcare/utils"

	"github.com/go-redis/redis/v8"
)

// RedisCartStore keeps carts as JSON blobs in Redis, scoped to one browsing
// session via TTL.
type RedisCartStore struct {
	Cache *redis.Client
}

// NewRedisCartStore returns a CartStore backed by the session cache.
func NewRedisCartStore(cache *redis.Client) *RedisCartStore {
	return &RedisCartStore{Cache: cache}
}

func cartKey(customerID string) string {
	return utils.CartKeyPrefix + customerID
}

// Get returns the customer's cart, or an empty cart if none exists yet.
func (s *RedisCartStore) Get(ctx context.Context, customerID string) (*models.Cart, error) {
	data, err := s.Cache.Get(ctx, cartKey(customerID)).Result()
	if err == redis.Nil {
		return &models.Cart{CustomerID: customerID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	var c models.Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("failed to parse cart: %w", err)
	}
	return &c, nil
}

// Save overwrites the stored cart and refreshes its session TTL.
func (s *RedisCartStore) Save(ctx context.Context, c *models.Cart) error {
	c.UpdatedAt = time.Now()
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.Cache.Set(ctx, cartKey(c.CustomerID), data, utils.SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}

// Clear discards the stored cart.
func (s *RedisCartStore) Clear(ctx context.Context, customerID string) error {
	if err := s.Cache.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
