package cache

import "gopkg.in/redis.v5"

type RedisRequestCacher struct {
	MaxNumber   int
	RedisClient *redis.Client
}

func CreateRedisCache(client *redis.Client, maxNumber int) *RedisRequestCacher {
	return &RedisRequestCacher{MaxNumber: maxNumber, RedisClient: client}
}

func (cacher *RedisRequestCacher) Write(key string, value []byte) error {
	pushCmd := cacher.RedisClient.LPush(key, string(value))

	if pushCmd.Err() != nil {
		return pushCmd.Err()
	}

	trimCmd := cacher.RedisClient.LTrim(key, 0, int64(cacher.MaxNumber-1))

	if trimCmd.Err() != nil {
		return trimCmd.Err()
	}

	return nil
}

func (cacher *RedisRequestCacher) Read(key string) ([]string, error) {
	return cacher.RedisClient.LRange(key, 0, int64(cacher.MaxNumber-1)).Result()
}
