package redisclient

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

//go:embed scripts/adjust_stock.lua
var adjustStockScript string

// Client mirrors product stock counts and caches the dashboard summary.
// The database is always authoritative; everything here is best effort
// and rebuilt from the database at startup.
type Client struct {
	rdb          *redis.Client
	adjustScript *redis.Script
}

// NewClient creates a new Redis client with the stock script loaded
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{
		rdb:          rdb,
		adjustScript: redis.NewScript(adjustStockScript),
	}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// InitStock seeds the stock mirror for a product
func (c *Client) InitStock(ctx context.Context, produtoID int64, estoqueAtual int) error {
	return c.rdb.Set(ctx, stockKey(produtoID), estoqueAtual, 0).Err()
}

// AdjustStock atomically applies a stock delta to the mirror, clamping
// at zero. Returns the mirrored count after the adjustment.
func (c *Client) AdjustStock(ctx context.Context, produtoID int64, delta int) (int, error) {
	result, err := c.adjustScript.Run(ctx, c.rdb, []string{stockKey(produtoID)}, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("adjust stock script failed: %w", err)
	}

	count, ok := result.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected script result type")
	}
	return int(count), nil
}

// GetStock reads the mirrored stock count for a product
func (c *Client) GetStock(ctx context.Context, produtoID int64) (int, error) {
	count, err := c.rdb.Get(ctx, stockKey(produtoID)).Int()
	if err == redis.Nil {
		return 0, fmt.Errorf("stock mirror missing for produto %d", produtoID)
	}
	return count, err
}

// DeleteStock drops the mirror entry for a removed product
func (c *Client) DeleteStock(ctx context.Context, produtoID int64) error {
	return c.rdb.Del(ctx, stockKey(produtoID)).Err()
}

const dashboardKey = "dashboard:summary"

// GetDashboard returns the cached dashboard summary JSON, or redis.Nil
// via found=false when the cache is cold.
func (c *Client) GetDashboard(ctx context.Context) ([]byte, bool, error) {
	data, err := c.rdb.Get(ctx, dashboardKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// SetDashboard caches the dashboard summary JSON with a TTL
func (c *Client) SetDashboard(ctx context.Context, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, dashboardKey, data, ttl).Err()
}

// InvalidateDashboard drops the cached summary after any mutation
func (c *Client) InvalidateDashboard(ctx context.Context) error {
	return c.rdb.Del(ctx, dashboardKey).Err()
}

func stockKey(produtoID int64) string {
	return fmt.Sprintf("estoque:%d", produtoID)
}
