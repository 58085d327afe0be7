package contextstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"visiting-card-bot/internal/entity"
)

const redisKeyPrefix = "cardbot:ctx:"

// Redis backs the store with a Redis hash of JSON values for deployments that
// want context to survive restarts. Same single-slot contract as Memory.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Put(ctx context.Context, conversationID string, card entity.Card) error {
	payload, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+conversationID, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, conversationID string) (entity.Card, bool, error) {
	payload, err := r.client.Get(ctx, redisKeyPrefix+conversationID).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.Card{}, false, nil
	}
	if err != nil {
		return entity.Card{}, false, fmt.Errorf("redis get: %w", err)
	}
	var card entity.Card
	if err := json.Unmarshal(payload, &card); err != nil {
		return entity.Card{}, false, fmt.Errorf("decode card: %w", err)
	}
	return card, true, nil
}
