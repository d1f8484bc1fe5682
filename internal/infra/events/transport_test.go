package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func bookingEvent() domain.Event {
	return NewEvent(domain.EventBookingCreated, 3, occurred, domain.BookingEventPayload{
		Booking: domain.BookingSnapshot{ID: 10, TenantID: 3, ReferenceCode: "ABCD2345", Status: domain.StatusPending},
	})
}

func TestRabbitMQTransport_Send(t *testing.T) {
	ch := &fakeChannel{}
	transport := &RabbitMQTransport{ch: ch, exchange: "appointments"}
	event := bookingEvent()

	require.NoError(t, transport.Send(context.Background(), event))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "appointments", got.exchange)
	assert.Equal(t, domain.EventBookingCreated, got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, event.ID, got.msg.MessageId)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, domain.EventBookingCreated, decoded["name"])
}

func TestRabbitMQTransport_SendError(t *testing.T) {
	transport := &RabbitMQTransport{ch: &fakeChannel{err: amqp.ErrClosed}, exchange: "appointments"}

	err := transport.Send(context.Background(), bookingEvent())

	assert.ErrorIs(t, err, ErrPublish)
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestRedisTransport_Send(t *testing.T) {
	client := &fakeRedis{}
	transport := &RedisTransport{client: client, channelPrefix: "appointments."}

	require.NoError(t, transport.Send(context.Background(), bookingEvent()))

	assert.Equal(t, []string{"appointments.booking.created"}, client.channels)
	assert.Contains(t, string(client.payloads[0]), `"reference_code":"ABCD2345"`)
}

func TestRedisTransport_SendError(t *testing.T) {
	boom := errors.New("connection refused")
	transport := &RedisTransport{client: &fakeRedis{err: boom}, channelPrefix: "appointments."}

	err := transport.Send(context.Background(), bookingEvent())

	assert.ErrorIs(t, err, ErrPublish)
	assert.ErrorIs(t, err, boom)
}

func TestLogTransport_Send(t *testing.T) {
	log := &fakeLogger{}

	require.NoError(t, NewLogTransport(log).Send(context.Background(), bookingEvent()))

	require.Len(t, log.infos, 1)
	assert.Contains(t, log.infos[0], "name=booking.created")
	assert.Contains(t, log.infos[0], "ABCD2345")
}
