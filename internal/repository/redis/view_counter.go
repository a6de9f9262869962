package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewCounterRepository keeps one counter per product per calendar day.
// Keys expire shortly after they leave the demand window, so the set
// stays bounded without a cleanup job.
type ViewCounterRepository struct {
	client *redis.Client
}

const counterTTL = 8 * 24 * time.Hour

func NewViewCounterRepository(client *redis.Client) *ViewCounterRepository {
	return &ViewCounterRepository{
		client: client,
	}
}

func counterKey(productID uint64, day time.Time) string {
	return fmt.Sprintf("views:%d:%s", productID, day.Format("2006-01-02"))
}

func (r *ViewCounterRepository) Incr(ctx context.Context, productID uint64, day time.Time) error {
	key := counterKey(productID, day)

	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, counterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment view counter: %w", err)
	}

	return nil
}

// SumWindow adds up the daily counters for today and the previous
// days-1 calendar days. Missing keys count as zero.
func (r *ViewCounterRepository) SumWindow(ctx context.Context, productID uint64, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("invalid window: %d days", days)
	}

	now := time.Now()
	keys := make([]string, 0, days)
	for i := 0; i < days; i++ {
		keys = append(keys, counterKey(productID, now.AddDate(0, 0, -i)))
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read view counters: %w", err)
	}

	var total int64
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		total += n
	}

	return total, nil
}
