package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

type Client struct {
	*goredis.Client
}

func New(addr, password string) (*Client, error) {

	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	c := &Client{Client: client}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := c.Healthcheck(ctx); err != nil {
		return nil, err
	}

	return c, nil

}

// Healthcheck verifies the connection is alive.
func (c *Client) Healthcheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
