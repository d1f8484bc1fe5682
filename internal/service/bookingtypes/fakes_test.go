package bookingtypes

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingTypeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/bookingtype"
)

type fakeBookingTypeRepo struct {
	types       map[int64]*domain.BookingType
	rules       []domain.AvailabilityRule
	withBooking map[int64]bool
	deleteErr   error
	nextID      int64
}

func newFakeBookingTypeRepo(types ...*domain.BookingType) *fakeBookingTypeRepo {
	repo := &fakeBookingTypeRepo{types: map[int64]*domain.BookingType{}, withBooking: map[int64]bool{}, nextID: 100}
	for _, bt := range types {
		repo.types[bt.ID] = bt
	}
	return repo
}

func (f *fakeBookingTypeRepo) Create(_ context.Context, bt *domain.BookingType) (*domain.BookingType, error) {
	f.nextID++
	bt.ID = f.nextID
	f.types[bt.ID] = bt
	return bt, nil
}

func (f *fakeBookingTypeRepo) GetByID(_ context.Context, id int64) (*domain.BookingType, error) {
	bt, ok := f.types[id]
	if !ok {
		return nil, bookingTypeRepo.ErrBookingTypeNotFound
	}
	cp := *bt
	return &cp, nil
}

func (f *fakeBookingTypeRepo) ListByTenant(_ context.Context, tenantID int64) ([]*domain.BookingType, error) {
	out := make([]*domain.BookingType, 0)
	for _, bt := range f.types {
		if bt.TenantID == tenantID {
			out = append(out, bt)
		}
	}
	return out, nil
}

func (f *fakeBookingTypeRepo) Update(_ context.Context, bt *domain.BookingType) (*domain.BookingType, error) {
	if _, ok := f.types[bt.ID]; !ok {
		return nil, bookingTypeRepo.ErrBookingTypeNotFound
	}
	f.types[bt.ID] = bt
	return bt, nil
}

func (f *fakeBookingTypeRepo) HasBookings(_ context.Context, id int64) (bool, error) {
	return f.withBooking[id], nil
}

func (f *fakeBookingTypeRepo) Delete(_ context.Context, _, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.types, id)
	return nil
}

func (f *fakeBookingTypeRepo) AddRule(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	f.nextID++
	rule.ID = f.nextID
	f.rules = append(f.rules, *rule)
	return rule, nil
}

func (f *fakeBookingTypeRepo) DeleteRule(_ context.Context, bookingTypeID, ruleID int64) error {
	for i, r := range f.rules {
		if r.ID == ruleID && r.BookingTypeID == bookingTypeID {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return bookingTypeRepo.ErrRuleNotFound
}

func (f *fakeBookingTypeRepo) ListRules(_ context.Context, bookingTypeID int64) ([]domain.AvailabilityRule, error) {
	out := make([]domain.AvailabilityRule, 0)
	for _, r := range f.rules {
		if r.BookingTypeID == bookingTypeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeFormRepo struct {
	forms  map[int64]int64 // formID -> tenantID
	linked map[int64][]int64
}

func (f *fakeFormRepo) FormExists(_ context.Context, tenantID, formID int64) (bool, error) {
	owner, ok := f.forms[formID]
	return ok && owner == tenantID, nil
}

func (f *fakeFormRepo) LinkForm(_ context.Context, bookingTypeID, formID int64) error {
	if f.linked == nil {
		f.linked = map[int64][]int64{}
	}
	f.linked[bookingTypeID] = append(f.linked[bookingTypeID], formID)
	return nil
}

func (f *fakeFormRepo) ListLinkedFormIDs(_ context.Context, bookingTypeID int64) ([]int64, error) {
	return f.linked[bookingTypeID], nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
