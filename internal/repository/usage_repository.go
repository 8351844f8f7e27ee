package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newstracker/db"
	"newstracker/internal/model"

	"github.com/redis/go-redis/v9"
)

// usageTTL keeps a day's counter around long enough to be read the next day.
const usageTTL = 48 * time.Hour

type UsageRepository struct {
	client *redis.Client
}

func NewUsageRepository(client *redis.Client) *UsageRepository {
	return &UsageRepository{client: client}
}

func usageKey(apiName string, day time.Time) string {
	return fmt.Sprintf("%s:%s:%s", db.UsageKeyPrefix, apiName, day.UTC().Format(model.UsageDateLayout))
}

func (r *UsageRepository) IncrementUsage(ctx context.Context, apiName string, at time.Time) error {
	key := usageKey(apiName, at)

	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, usageTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *UsageRepository) GetUsage(ctx context.Context, apiName string, day time.Time) (*model.ApiUsage, error) {
	usage := &model.ApiUsage{
		ApiName:   apiName,
		UsageDate: time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC),
	}

	count, err := r.client.Get(ctx, usageKey(apiName, day)).Int64()
	if errors.Is(err, redis.Nil) {
		return usage, nil
	}
	if err != nil {
		return nil, err
	}

	usage.RequestCount = count
	return usage, nil
}
