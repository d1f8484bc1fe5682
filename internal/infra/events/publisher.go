package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Publisher принимает события после фиксации транзакции
type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Transport доставляет одно событие во внешний брокер
type Transport interface {
	Send(ctx context.Context, event domain.Event) error
	Close() error
}

// Recorder приёмник метрик событий
type Recorder interface {
	IncEvent(event, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewEvent собирает событие с новым идентификатором
func NewEvent(name string, tenantID int64, occurredAt time.Time, payload interface{}) domain.Event {
	return domain.Event{
		ID:         uuid.NewString(),
		Name:       name,
		TenantID:   tenantID,
		OccurredAt: occurredAt.UTC(),
		Payload:    payload,
	}
}

// Collector копит события внутри попытки транзакции
// Reset вызывается в начале каждой попытки, Flush после коммита
type Collector struct {
	events []domain.Event
}

func (c *Collector) Add(e domain.Event) {
	c.events = append(c.events, e)
}

func (c *Collector) Reset() {
	c.events = c.events[:0]
}

func (c *Collector) Events() []domain.Event {
	out := make([]domain.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Flush публикует накопленные события по порядку
// Ошибки публикации не прерывают отправку остальных и только логируются
func (c *Collector) Flush(ctx context.Context, publisher Publisher, logger Logger) {
	for _, e := range c.events {
		if err := publisher.Publish(ctx, e); err != nil {
			logger.Warn("PublishEvent: event=%s id=%s tenant=%d not published: %v", e.Name, e.ID, e.TenantID, err)
		}
	}
	c.events = nil
}

// NopPublisher отбрасывает события
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) error { return nil }
