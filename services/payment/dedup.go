package payment

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisDeduper records seen webhook event ids in Redis with a TTL. On Redis
// failure it reports first delivery, trading a possible reprocess (harmless,
// the settlement writes are idempotent) for availability.
type RedisDeduper struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func (d *RedisDeduper) FirstDelivery(ctx context.Context, eventID string) bool {
	ttl := d.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	first, err := d.Client.SetNX(ctx, "stripe:event:"+eventID, 1, ttl).Result()
	if err != nil {
		d.Logger.Warn("event dedup store unavailable", zap.Error(err))
		return true
	}
	return first
}
