package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// InterpretationCache keeps recent parent interpretations in Redis so
// repeated dashboard loads don't re-run the model. Misses and Redis
// failures both fall through to a fresh generation; the cache is an
// optimization, never a source of truth.
type InterpretationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInterpretationCache connects to Redis. Returns an error when the
// URL is unparsable or the server is unreachable; callers run without
// a cache in that case.
func NewInterpretationCache(redisURL string, ttl time.Duration) (*InterpretationCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &InterpretationCache{client: client, ttl: ttl}, nil
}

func interpretationKey(userID int) string {
	return fmt.Sprintf("interpretation:%d", userID)
}

// Get returns the cached interpretation for a user, or ok=false on
// miss or any Redis error.
func (c *InterpretationCache) Get(ctx context.Context, userID int) (ParentInterpretation, bool) {
	if c == nil {
		return ParentInterpretation{}, false
	}

	data, err := c.client.Get(ctx, interpretationKey(userID)).Bytes()
	if err != nil {
		return ParentInterpretation{}, false
	}

	var cached ParentInterpretation
	if err := json.Unmarshal(data, &cached); err != nil {
		return ParentInterpretation{}, false
	}
	return cached, true
}

// Set stores an interpretation with the cache TTL. Errors are dropped;
// the next request simply regenerates.
func (c *InterpretationCache) Set(ctx context.Context, userID int, interp ParentInterpretation) {
	if c == nil {
		return
	}

	data, err := json.Marshal(interp)
	if err != nil {
		return
	}
	c.client.Set(ctx, interpretationKey(userID), data, c.ttl)
}

// Invalidate drops a user's cached interpretation, e.g. after new
// activity lands.
func (c *InterpretationCache) Invalidate(ctx context.Context, userID int) {
	if c == nil {
		return
	}
	c.client.Del(ctx, interpretationKey(userID))
}
