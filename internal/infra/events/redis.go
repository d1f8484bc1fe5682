package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// redisPublisher часть *redis.Client, используемая транспортом
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// RedisTransport публикует события в Pub/Sub канал <prefix><имя события>
type RedisTransport struct {
	client        redisPublisher
	channelPrefix string
}

// NewRedisTransport создает транспорт поверх готового клиента
func NewRedisTransport(client *redis.Client, channelPrefix string) *RedisTransport {
	return &RedisTransport{client: client, channelPrefix: channelPrefix}
}

func (t *RedisTransport) Send(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshal, err)
	}

	channel := t.channelPrefix + event.Name
	if err := t.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("%w: redis channel=%s: %w", ErrPublish, channel, err)
	}
	return nil
}

func (t *RedisTransport) Close() error {
	return t.client.Close()
}
