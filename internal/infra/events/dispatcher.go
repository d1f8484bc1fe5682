package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	defaultQueueSize   = 1024
	defaultWorkers     = 2
	defaultSendTimeout = 5 * time.Second

	resultPublished = "published"
	resultFailed    = "failed"
	resultDropped   = "dropped"
)

// Dispatcher асинхронно доставляет события через Transport
// Доставка at-most-once: неудачная отправка логируется и не повторяется
type Dispatcher struct {
	transport   Transport
	logger      Logger
	recorder    Recorder
	queue       chan domain.Event
	workers     int
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

type Option func(*Dispatcher)

func WithQueueSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan domain.Event, n)
		}
	}
}

func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

func WithSendTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.sendTimeout = timeout
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) {
		d.recorder = r
	}
}

// NewDispatcher создает диспетчер и запускает воркеры
func NewDispatcher(transport Transport, logger Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport:   transport,
		logger:      logger,
		queue:       make(chan domain.Event, defaultQueueSize),
		workers:     defaultWorkers,
		sendTimeout: defaultSendTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work()
	}

	return d
}

// Publish ставит событие в очередь и никогда не блокируется
func (d *Dispatcher) Publish(_ context.Context, event domain.Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- event:
		return nil
	default:
		d.record(event.Name, resultDropped)
		return fmt.Errorf("%w: event=%s id=%s", ErrQueueFull, event.Name, event.ID)
	}
}

// Close перестает принимать события и ждёт, пока воркеры разберут очередь
// Если ctx истекает раньше, оставшиеся события теряются
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
		d.logger.Warn("Dispatcher: shutdown deadline reached, %d events left in queue", len(d.queue))
	}

	if closeErr := d.transport.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (d *Dispatcher) work() {
	defer d.wg.Done()

	for event := range d.queue {
		d.send(event)
	}
}

func (d *Dispatcher) send(event domain.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.transport.Send(ctx, event); err != nil {
		d.record(event.Name, resultFailed)
		d.logger.Error("Dispatcher: failed to deliver event=%s id=%s tenant=%d: %v", event.Name, event.ID, event.TenantID, err)
		return
	}

	d.record(event.Name, resultPublished)
}

func (d *Dispatcher) record(event, result string) {
	if d.recorder != nil {
		d.recorder.IncEvent(event, result)
	}
}
