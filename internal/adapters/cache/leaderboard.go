package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"seatbooking/internal/domain"
)

const keyPrefix = "leaderboard"

type redisLeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache returns a LeaderboardCache backed by redis. Entries expire after ttl.
func NewLeaderboardCache(client *redis.Client, ttl time.Duration) domain.LeaderboardCache {
	return &redisLeaderboardCache{client: client, ttl: ttl}
}

func leaderboardKey(period domain.Period, limit int) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, period, limit)
}

func (c *redisLeaderboardCache) Get(ctx context.Context, period domain.Period, limit int) (*domain.Leaderboard, bool, error) {
	raw, err := c.client.Get(ctx, leaderboardKey(period, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get leaderboard: %w", err)
	}
	var lb domain.Leaderboard
	if err := json.Unmarshal(raw, &lb); err != nil {
		return nil, false, fmt.Errorf("decode leaderboard: %w", err)
	}
	return &lb, true, nil
}

func (c *redisLeaderboardCache) Set(ctx context.Context, period domain.Period, limit int, lb *domain.Leaderboard) error {
	raw, err := json.Marshal(lb)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := c.client.Set(ctx, leaderboardKey(period, limit), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set leaderboard: %w", err)
	}
	return nil
}

type noopLeaderboardCache struct{}

// NewNoopLeaderboardCache returns a cache that never stores anything.
func NewNoopLeaderboardCache() domain.LeaderboardCache {
	return noopLeaderboardCache{}
}

func (noopLeaderboardCache) Get(context.Context, domain.Period, int) (*domain.Leaderboard, bool, error) {
	return nil, false, nil
}

func (noopLeaderboardCache) Set(context.Context, domain.Period, int, *domain.Leaderboard) error {
	return nil
}
