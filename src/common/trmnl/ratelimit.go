package trmnl

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitWindow is how often TRMNL accepts a webhook per plugin.
const RateLimitWindow = 5 * time.Minute

// RateLimitGuard allows one send per window per webhook URL, shared across
// processes through redis.
type RateLimitGuard struct {
	rdb    *redis.Client
	key    string
	window time.Duration
}

func NewRateLimitGuard(rdb *redis.Client, webhookURL string) *RateLimitGuard {
	sum := sha1.Sum([]byte(webhookURL))

	return &RateLimitGuard{
		rdb:    rdb,
		key:    "trmnl:last_sent:" + hex.EncodeToString(sum[:]),
		window: RateLimitWindow,
	}
}

// Allow claims the current window. It returns false while an earlier claim
// has not expired.
func (g *RateLimitGuard) Allow(ctx context.Context) (bool, error) {
	return g.rdb.SetNX(ctx, g.key, time.Now().Unix(), g.window).Result()
}
