package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	domcoupon "example.com/storefront-checkout/internal/domain/coupon"
)

const keyPrefix = "coupon:"

type RedisCouponCache struct {
	client *redis.Client
}

func NewRedisCouponCache(addr, password string, db int) *RedisCouponCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCouponCache{client: client}
}

func (c *RedisCouponCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCouponCache) Close() error {
	return c.client.Close()
}

func (c *RedisCouponCache) Get(ctx context.Context, code string) (*domcoupon.Coupon, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+code).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var cpn domcoupon.Coupon
	if err := json.Unmarshal([]byte(val), &cpn); err != nil {
		return nil, false, err
	}
	return &cpn, true, nil
}

func (c *RedisCouponCache) Set(ctx context.Context, code string, cpn *domcoupon.Coupon, ttl time.Duration) error {
	if cpn == nil {
		return nil
	}
	payload, err := json.Marshal(cpn)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+code, payload, ttl).Err()
}

func (c *RedisCouponCache) Delete(ctx context.Context, code string) error {
	return c.client.Del(ctx, keyPrefix+code).Err()
}

// NoopCouponCache is used when Redis is not configured; every lookup falls
// through to the store.
type NoopCouponCache struct{}

func (NoopCouponCache) Get(_ context.Context, _ string) (*domcoupon.Coupon, bool, error) {
	return nil, false, nil
}

func (NoopCouponCache) Set(_ context.Context, _ string, _ *domcoupon.Coupon, _ time.Duration) error {
	return nil
}

func (NoopCouponCache) Delete(_ context.Context, _ string) error {
	return nil
}
