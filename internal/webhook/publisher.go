package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/dispatch_alerts/internal/models"
)

const (
	// EventQueueKey - список Redis, в который зеркалируются события трекера
	EventQueueKey = "dispatch_events"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

// EventPublisher - интерфейс для публикации событий трекера
type EventPublisher interface {
	Publish(ctx context.Context, event models.TrackerEvent) error
}

// RedisEventPublisher - реализация EventPublisher, использующая Redis
type RedisEventPublisher struct {
	redisClient redis.Cmdable
	queueKey    string
}

// NewRedisEventPublisher создает новый RedisEventPublisher
func NewRedisEventPublisher(client redis.Cmdable) *RedisEventPublisher {
	return &RedisEventPublisher{
		redisClient: client,
		queueKey:    EventQueueKey,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisEventPublisher) Publish(ctx context.Context, event models.TrackerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal tracker event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, p.queueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish tracker event to Redis: %w", err)
	}
	return nil
}
