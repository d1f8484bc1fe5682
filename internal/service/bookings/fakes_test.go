package bookings

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	bookings    map[int64]*domain.Booking
	concurrent  func(b map[int64]*domain.Booking) // имитирует параллельную транзакцию перед UPDATE
	lastFilter  domain.BookingsFilter
	transitions []bookingRepo.StatusTransition
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, tenantID, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.TenantID == filter.TenantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) TransitionStatus(_ context.Context, t bookingRepo.StatusTransition) (*domain.Booking, error) {
	f.transitions = append(f.transitions, t)
	if f.concurrent != nil {
		f.concurrent(f.bookings)
	}

	b, ok := f.bookings[t.BookingID]
	if !ok || b.TenantID != t.TenantID || b.Status != t.From {
		return nil, bookingRepo.ErrStatusChanged
	}

	b.Status = t.To
	if t.CancelledAt != nil {
		b.CancelledAt = t.CancelledAt
	}
	if len(t.Metadata) > 0 {
		if b.Metadata == nil {
			b.Metadata = map[string]string{}
		}
		for k, v := range t.Metadata {
			b.Metadata[k] = v
		}
	}
	cp := *b
	return &cp, nil
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
