package feed

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func NewRedis() (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     viper.GetString("feed.redis_addr"),
		Password: viper.GetString("feed.redis_password"),
		DB:       viper.GetInt("feed.redis_db"),
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to redis: %v", err)
	}

	return rdb, nil
}

// Cache holds one append-only timeline per account, stored as a redis list.
// Appends go to the tail, reads return the whole list oldest first, so a
// re-read always starts from the beginning and never consumes entries.
//
// The cache does not deduplicate; delivering the same post twice to the same
// recipient is the caller's mistake and will show up twice.
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) Append(ctx context.Context, recipientID, postRef string) error {
	if err := c.rdb.RPush(ctx, feedKey(recipientID), postRef).Err(); err != nil {
		return fmt.Errorf("unable to append feed entry: %v", err)
	}
	return nil
}

func (c *Cache) ReadAll(ctx context.Context, recipientID string) ([]string, error) {
	data, err := c.rdb.LRange(ctx, feedKey(recipientID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("unable to read feed: %v", err)
	}
	return data, nil
}

func feedKey(recipientID string) string {
	return fmt.Sprintf("feed#%s", recipientID)
}
