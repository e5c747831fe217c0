package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DedupWindow is how long a visitor counts as "already seen" per portfolio.
const DedupWindow = 30 * time.Minute

// RedisViewDeduper marks portfolio+IP pairs in Redis so repeat page loads
// within the window do not inflate view counts.
type RedisViewDeduper struct {
	client *redis.Client
}

func NewRedisViewDeduper(client *redis.Client) *RedisViewDeduper {
	return &RedisViewDeduper{client: client}
}

// Seen atomically claims the portfolio+IP pair. It returns true when the
// pair was already claimed within the window.
func (d *RedisViewDeduper) Seen(ctx context.Context, portfolioID uuid.UUID, viewerIP string) (bool, error) {
	key := fmt.Sprintf("views:%s:%s", portfolioID, viewerIP)
	set, err := d.client.SetNX(ctx, key, 1, DedupWindow).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup SETNX failed: %w", err)
	}
	return !set, nil
}
