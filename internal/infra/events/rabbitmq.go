package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// amqpChannel часть *amqp.Channel, используемая транспортом
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQTransport публикует события в topic exchange, routing key = имя события
type RabbitMQTransport struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
}

// NewRabbitMQTransport подключается к брокеру и объявляет exchange
func NewRabbitMQTransport(url, exchange string) (*RabbitMQTransport, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declare exchange %s: %w", exchange, err)
	}
	return &RabbitMQTransport{conn: conn, ch: ch, exchange: exchange}, nil
}

func (t *RabbitMQTransport) Send(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshal, err)
	}

	err = t.ch.PublishWithContext(ctx, t.exchange, event.Name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         event.Name,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: rabbitmq exchange=%s key=%s: %w", ErrPublish, t.exchange, event.Name, err)
	}
	return nil
}

func (t *RabbitMQTransport) Close() error {
	if t.ch != nil {
		_ = t.ch.Close()
	}
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}
