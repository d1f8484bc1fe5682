package events

import "errors"

var (
	// ErrQueueFull очередь диспетчера заполнена, событие отброшено
	ErrQueueFull = errors.New("events: dispatcher queue is full")

	// ErrClosed диспетчер уже остановлен
	ErrClosed = errors.New("events: dispatcher is closed")

	// ErrMarshal не удалось сериализовать событие
	ErrMarshal = errors.New("events: failed to marshal event")

	// ErrPublish транспорт не смог доставить событие
	ErrPublish = errors.New("events: failed to publish event")

	// ErrUnknownTransport неизвестный транспорт в конфигурации
	ErrUnknownTransport = errors.New("events: unknown transport")
)
