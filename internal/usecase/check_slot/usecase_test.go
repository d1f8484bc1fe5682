package check_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingTypeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/bookingtype"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeBookingTypeRepo struct{}

func (fakeBookingTypeRepo) GetByID(_ context.Context, id int64) (*domain.BookingType, error) {
	if id != 2 {
		return nil, bookingTypeRepo.ErrBookingTypeNotFound
	}
	return &domain.BookingType{ID: 2, TenantID: 1, DurationMinutes: 30, IsActive: true}, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) ListActiveInRange(_ context.Context, _ int64, from, to time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.Overlaps(from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

var base = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

func newUseCase() *UseCase {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 11, BookingTypeID: 2, StartTime: base, EndTime: base.Add(30 * time.Minute), Status: domain.StatusConfirmed},
	}}
	return NewUseCase(fakeBookingTypeRepo{}, availability.NewChecker(repo), logger.NewNop())
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		exclude   *int64
		available bool
	}{
		{name: "overlap", start: base.Add(15 * time.Minute), end: base.Add(45 * time.Minute), available: false},
		{name: "touching end", start: base.Add(30 * time.Minute), end: base.Add(60 * time.Minute), available: true},
		{name: "touching start", start: base.Add(-30 * time.Minute), end: base, available: true},
		{name: "excluded booking", start: base, end: base.Add(30 * time.Minute), exclude: ptr.Ptr(int64(11)), available: true},
	}

	uc := newUseCase()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), &Request{
				BookingTypeID:    2,
				Start:            tt.start,
				End:              tt.end,
				ExcludeBookingID: tt.exclude,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.available, resp.Available)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{BookingTypeID: 2, Start: base, End: base})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{BookingTypeID: 2, Start: base, End: base.Add(-time.Minute)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{BookingTypeID: 9, Start: base, End: base.Add(time.Minute)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
