package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/ticket-bot/internal/domain"
	"github.com/spec-kit/ticket-bot/internal/persistence"
)

const redisCounterKeyPrefix = "ticket:counter:"

type redisCounterRepository struct {
	redis *persistence.Redis
}

// NewRedisCounterRepository issues ticket numbers via Redis INCR, which is
// atomic across concurrently handled interactions.
func NewRedisCounterRepository(r *persistence.Redis) CounterRepository {
	return &redisCounterRepository{redis: r}
}

func (r *redisCounterRepository) Next(ctx context.Context, t domain.TicketType) (int, error) {
	value, err := r.redis.Client.Incr(ctx, redisCounterKeyPrefix+string(t)).Result()
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

func (r *redisCounterRepository) Snapshot(ctx context.Context) (map[domain.TicketType]int, error) {
	snapshot := make(map[domain.TicketType]int)
	for _, t := range domain.TicketTypes() {
		raw, err := r.redis.Client.Get(ctx, redisCounterKeyPrefix+string(t)).Result()
		if errors.Is(err, redis.Nil) {
			snapshot[t] = 0
			continue
		}
		if err != nil {
			return nil, err
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		snapshot[t] = value
	}
	return snapshot, nil
}
