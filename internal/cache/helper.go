package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: return the cached value when
// present, otherwise invoke fetch (which must populate dest) and store the
// result. Cache failures degrade to the fetch path, never to an error.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client != nil {
		raw, err := client.Get(ctx, key).Bytes()
		if err == nil {
			if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
				return nil
			}
			// Corrupt entry; drop it and fall through to the fetch.
			client.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			// Redis unavailable or failing; serve from the store.
		}
	}

	if err := fetch(); err != nil {
		return err
	}

	if client != nil {
		if raw, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}

	return nil
}
