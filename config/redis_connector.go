package config

import (
	"fmt"

	"gopkg.in/redis.v5"
)

// SetupRedis connects to addr and checks the server answers.
func SetupRedis(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return client, nil
}
