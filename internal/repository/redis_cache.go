package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"member-pricing-service/internal/entity"
	"member-pricing-service/internal/service"
)

// PriceCache keeps stored product prices in redis. Only catalog data is
// cached; resolution runs per request because it depends on the viewer.
type PriceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPriceCache(rdb *redis.Client, ttl time.Duration) *PriceCache {
	return &PriceCache{rdb: rdb, ttl: ttl}
}

func productKey(id int) string {
	return fmt.Sprintf("pricing:product:%d", id)
}

// Get returns the cached product. A miss is reported as (nil, false, nil).
func (c *PriceCache) Get(ctx context.Context, id int) (*entity.Product, bool, error) {
	data, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var cached entity.CachedProduct
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("could not unmarshal cached product %d: %w", id, err)
	}
	p := cached.ToProduct()
	return &p, true, nil
}

func (c *PriceCache) Set(ctx context.Context, product *entity.Product) error {
	data, err := json.Marshal(product.ToCache())
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, productKey(product.ID), data, c.ttl).Err()
}

func (c *PriceCache) Invalidate(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// SessionStore keeps the last issued token per user email.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(email string) string {
	return "session:" + email
}

func (s *SessionStore) Save(ctx context.Context, email, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(email), token, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, email string) (string, error) {
	token, err := s.rdb.Get(ctx, sessionKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("session not found: %w", service.ErrUnauthorized)
		}
		return "", err
	}
	return token, nil
}
