package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// LogTransport пишет события в лог, используется без брокера
type LogTransport struct {
	logger Logger
}

func NewLogTransport(logger Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Send(_ context.Context, event domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	t.logger.Info("Event: name=%s id=%s tenant=%d occurred_at=%s payload=%s",
		event.Name, event.ID, event.TenantID, event.OccurredAt.Format(time.RFC3339), payload)
	return nil
}

func (t *LogTransport) Close() error { return nil }
