package scorecache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GlebRadaev/duelhub/internal/domain"
)

const (
	fieldHost  = "host"
	fieldGuest = "guest"
)

// RedisCache keeps one hash per duel session: {host, guest}.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

func New(client redis.UniversalClient) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "duel",
	}
}

func (c *RedisCache) key(sessionID int) string {
	return fmt.Sprintf("%s:%d:scores", c.prefix, sessionID)
}

func (c *RedisCache) Get(ctx context.Context, sessionID int) (domain.Scores, bool, error) {
	values, err := c.client.HGetAll(ctx, c.key(sessionID)).Result()
	if err != nil {
		return domain.Scores{}, false, err
	}
	if len(values) == 0 {
		return domain.Scores{}, false, nil
	}
	scores, err := parseScores(values)
	if err != nil {
		return domain.Scores{}, false, err
	}
	return scores, true, nil
}

func (c *RedisCache) Set(ctx context.Context, sessionID int, scores domain.Scores, ttl time.Duration) error {
	key := c.key(sessionID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldHost, scores.Host, fieldGuest, scores.Guest)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (c *RedisCache) Incr(ctx context.Context, sessionID int, party domain.Party, points int64, seed domain.Scores, ttl time.Duration) (domain.Scores, error) {
	key := c.key(sessionID)
	var all *redis.MapStringStringCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, key, fieldHost, seed.Host)
		pipe.HSetNX(ctx, key, fieldGuest, seed.Guest)
		pipe.HIncrBy(ctx, key, string(party), points)
		pipe.Expire(ctx, key, ttl)
		all = pipe.HGetAll(ctx, key)
		return nil
	})
	if err != nil {
		return domain.Scores{}, err
	}
	return parseScores(all.Val())
}

func (c *RedisCache) Delete(ctx context.Context, sessionID int) error {
	return c.client.Del(ctx, c.key(sessionID)).Err()
}

func parseScores(values map[string]string) (domain.Scores, error) {
	var scores domain.Scores
	var err error
	if v, ok := values[fieldHost]; ok {
		if scores.Host, err = strconv.ParseInt(v, 10, 64); err != nil {
			return domain.Scores{}, fmt.Errorf("bad host score %q: %w", v, err)
		}
	}
	if v, ok := values[fieldGuest]; ok {
		if scores.Guest, err = strconv.ParseInt(v, 10, 64); err != nil {
			return domain.Scores{}, fmt.Errorf("bad guest score %q: %w", v, err)
		}
	}
	return scores, nil
}
