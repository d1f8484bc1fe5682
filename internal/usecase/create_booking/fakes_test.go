package create_booking

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingTypeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/bookingtype"
)

type fakeBookingRepo struct {
	nextID     int64
	created    []*domain.Booking
	createErrs []error // по одной ошибке на вызов Create
	takenCodes map[string]bool
	locks      int
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = now
	b.UpdatedAt = now
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBookingRepo) LockBookingType(context.Context, int64) error {
	f.locks++
	return nil
}

func (f *fakeBookingRepo) ReferenceCodeExists(_ context.Context, code string) (bool, error) {
	return f.takenCodes[code], nil
}

type fakeBookingTypeRepo struct {
	types      map[int64]*domain.BookingType
	rules      []domain.AvailabilityRule
	bookings   *fakeBookingRepo
	locksAtGet int // число блокировок на момент чтения типа
}

func (f *fakeBookingTypeRepo) GetByID(_ context.Context, id int64) (*domain.BookingType, error) {
	if f.bookings != nil {
		f.locksAtGet = f.bookings.locks
	}
	bt, ok := f.types[id]
	if !ok {
		return nil, bookingTypeRepo.ErrBookingTypeNotFound
	}
	return bt, nil
}

func (f *fakeBookingTypeRepo) ListRulesForDay(_ context.Context, bookingTypeID int64, day time.Weekday) ([]domain.AvailabilityRule, error) {
	rules := make([]domain.AvailabilityRule, 0)
	for _, r := range f.rules {
		if r.BookingTypeID == bookingTypeID && r.DayOfWeek == day {
			rules = append(rules, r)
		}
	}
	return rules, nil
}

type fakeTimezone struct{ loc *time.Location }

func (f fakeTimezone) Resolve(context.Context, int64) *time.Location {
	if f.loc == nil {
		return time.UTC
	}
	return f.loc
}

type fakeFormRepo struct {
	formIDs     []int64
	submissions []*domain.FormSubmission
}

func (f *fakeFormRepo) ListLinkedFormIDs(context.Context, int64) ([]int64, error) {
	return f.formIDs, nil
}

func (f *fakeFormRepo) CreateSubmission(_ context.Context, sub *domain.FormSubmission) (*domain.FormSubmission, error) {
	sub.ID = int64(len(f.submissions) + 100)
	f.submissions = append(f.submissions, sub)
	return sub, nil
}

type fakeChecker struct {
	unavailable bool
	calls       int
}

func (f *fakeChecker) IsAvailable(context.Context, int64, time.Time, time.Time, *int64) (bool, error) {
	f.calls++
	return !f.unavailable, nil
}

type fakeResolver struct {
	contact *domain.Contact
	created bool
}

func (f *fakeResolver) Resolve(_ context.Context, tenantID int64, c domain.Customer) (*domain.Contact, bool, error) {
	if f.contact != nil {
		return f.contact, f.created, nil
	}
	return &domain.Contact{ID: 5, TenantID: tenantID, Name: c.Name, Email: c.NormalizedEmail()}, f.created, nil
}

// fakeTxManager повторяет fn retries раз, имитируя ошибку сериализации после тела транзакции
type fakeTxManager struct {
	retries int
	calls   int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	for {
		f.calls++
		if err := fn(ctx); err != nil {
			return err
		}
		if f.retries == 0 {
			return nil
		}
		f.retries--
	}
}

type fakePublisher struct {
	events []domain.Event
}

func (f *fakePublisher) Publish(_ context.Context, e domain.Event) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakePublisher) names() []string {
	names := make([]string, 0, len(f.events))
	for _, e := range f.events {
		names = append(names, e.Name)
	}
	return names
}

type fakeMetrics struct {
	created   int
	conflicts map[string]int
	exhausted int
}

func (f *fakeMetrics) IncBookingCreated() { f.created++ }

func (f *fakeMetrics) IncSlotConflict(op string) {
	if f.conflicts == nil {
		f.conflicts = map[string]int{}
	}
	f.conflicts[op]++
}

func (f *fakeMetrics) IncReferenceCodeExhausted() { f.exhausted++ }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// lockingStore хранилище с настоящей блокировкой типа: бронирования видны другим только после коммита
type lockingStore struct {
	typeLock  sync.Mutex
	mu        sync.Mutex
	committed []*domain.Booking
	nextID    int64
}

type storeTx struct {
	locked  bool
	pending []*domain.Booking
}

type storeTxKey struct{}

func currentTx(ctx context.Context) *storeTx {
	tx, _ := ctx.Value(storeTxKey{}).(*storeTx)
	return tx
}

func (s *lockingStore) LockBookingType(ctx context.Context, _ int64) error {
	s.typeLock.Lock()
	currentTx(ctx).locked = true
	return nil
}

func (s *lockingStore) ReferenceCodeExists(context.Context, string) (bool, error) {
	return false, nil
}

func (s *lockingStore) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	s.nextID++
	b.ID = s.nextID
	s.mu.Unlock()

	tx := currentTx(ctx)
	tx.pending = append(tx.pending, b)
	return b, nil
}

func (s *lockingStore) IsAvailable(_ context.Context, bookingTypeID int64, start, end time.Time, _ *int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.committed {
		if b.BookingTypeID == bookingTypeID && b.IsActive() && b.Overlaps(start, end) {
			return false, nil
		}
	}
	return true, nil
}

func (s *lockingStore) snapshot() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Booking(nil), s.committed...)
}

// lockingTxManager фиксирует вставки при успехе и отпускает блокировку типа в конце транзакции
type lockingTxManager struct{ store *lockingStore }

func (m lockingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := &storeTx{}
	err := fn(context.WithValue(ctx, storeTxKey{}, tx))

	if err == nil {
		m.store.mu.Lock()
		m.store.committed = append(m.store.committed, tx.pending...)
		m.store.mu.Unlock()
	}
	if tx.locked {
		m.store.typeLock.Unlock()
	}
	return err
}

// syncPublisher и syncMetrics безопасны для параллельных вызовов
type syncPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *syncPublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

type syncMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
}

func (m *syncMetrics) IncBookingCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *syncMetrics) IncSlotConflict(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

func (m *syncMetrics) IncReferenceCodeExhausted() {}
