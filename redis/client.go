package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds all configuration for the Redis client
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Client is a wrapper around the go-redis client providing the notification
// stream operations the dispatcher needs.
type Client struct {
	client *redis.Client
}

// NewClient creates and connects a new Client.
func NewClient(cfg *Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{client: rdb}, nil
}

// Close gracefully closes the Redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying go-redis client if needed.
func (c *Client) GetClient() *redis.Client {
	return c.client
}

// Publish adds an event to the given stream using XADD.
// Using '*' as the ID tells Redis to auto-generate a timestamp-based ID.
func (c *Client) Publish(ctx context.Context, streamName string, data map[string]interface{}) (string, error) {
	msgID, err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		Values: data,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to XADD to stream %s: %w", streamName, err)
	}
	return msgID, nil
}
