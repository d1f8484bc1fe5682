package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

var now = time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

func booking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		TenantID:      1,
		ContactID:     5,
		BookingTypeID: 2,
		ReferenceCode: "ABCD2345",
		StartTime:     now.Add(2 * time.Hour),
		EndTime:       now.Add(150 * time.Minute),
		Status:        status,
	}
}

func newService(repo *fakeBookingRepo, pub *fakePublisher) *Service {
	return NewService(repo, &fakeTxManager{}, pub, fixedClock{now: now}, logger.NewNop())
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		wantErr error
		event   string
	}{
		{name: "pending to confirmed", from: domain.StatusPending, to: "confirmed", event: domain.EventBookingUpdated},
		{name: "confirmed to completed", from: domain.StatusConfirmed, to: "completed", event: domain.EventBookingUpdated},
		{name: "confirmed to no_show", from: domain.StatusConfirmed, to: "no_show", event: domain.EventBookingUpdated},
		{name: "pending to cancelled", from: domain.StatusPending, to: "cancelled", event: domain.EventBookingCancelled},
		{name: "pending to completed", from: domain.StatusPending, to: "completed", wantErr: domain.ErrInvalidTransition},
		{name: "completed to confirmed", from: domain.StatusCompleted, to: "confirmed", wantErr: domain.ErrInvalidTransition},
		{name: "cancelled to pending", from: domain.StatusCancelled, to: "pending", wantErr: domain.ErrInvalidTransition},
		{name: "unknown status", from: domain.StatusPending, to: "archived", wantErr: domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo(booking(10, tt.from))
			pub := &fakePublisher{}

			resp, err := newService(repo, pub).UpdateStatus(context.Background(), &models.UpdateStatusRequest{
				TenantID: 1, BookingID: 10, Status: tt.to,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.bookings[10].Status)
				assert.Empty(t, pub.events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			require.Len(t, pub.events, 1)
			assert.Equal(t, tt.event, pub.events[0].Name)

			payload, ok := pub.events[0].Payload.(domain.BookingEventPayload)
			require.True(t, ok)
			require.NotNil(t, payload.Previous)
			assert.Equal(t, tt.from, payload.Previous.Status)
		})
	}
}

func TestUpdateStatus_NotFoundForOtherTenant(t *testing.T) {
	repo := newFakeBookingRepo(booking(10, domain.StatusPending))

	_, err := newService(repo, &fakePublisher{}).UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		TenantID: 2, BookingID: 10, Status: "confirmed",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_ConcurrentChangeIsInvalidTransition(t *testing.T) {
	repo := newFakeBookingRepo(booking(10, domain.StatusPending))
	repo.concurrent = func(b map[int64]*domain.Booking) { b[10].Status = domain.StatusCancelled }

	_, err := newService(repo, &fakePublisher{}).UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		TenantID: 1, BookingID: 10, Status: "confirmed",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[10].Status)
}

func TestUpdateStatus_ConcurrentDeleteIsNotFound(t *testing.T) {
	repo := newFakeBookingRepo(booking(10, domain.StatusPending))
	repo.concurrent = func(b map[int64]*domain.Booking) { delete(b, 10) }

	_, err := newService(repo, &fakePublisher{}).UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		TenantID: 1, BookingID: 10, Status: "confirmed",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_StoresReasonAndTimestamp(t *testing.T) {
	repo := newFakeBookingRepo(booking(10, domain.StatusConfirmed))
	pub := &fakePublisher{}

	resp, err := newService(repo, pub).Cancel(context.Background(), &models.CancelBookingRequest{
		TenantID: 1, BookingID: 10, Reason: "  feeling unwell ",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, "feeling unwell", resp.Metadata[domain.MetadataCancelReason])
	require.NotNil(t, resp.CancelledAt)
	assert.True(t, now.Equal(*resp.CancelledAt))
	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventBookingCancelled, pub.events[0].Name)
}

func TestCancel_RejectsTerminalStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusNoShow, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeBookingRepo(booking(10, status))

			_, err := newService(repo, &fakePublisher{}).Cancel(context.Background(), &models.CancelBookingRequest{
				TenantID: 1, BookingID: 10,
			})

			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Empty(t, repo.transitions)
		})
	}
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := newFakeBookingRepo(booking(10, domain.StatusPending))

	_, err := newService(repo, &fakePublisher{}).Cancel(context.Background(), &models.CancelBookingRequest{
		TenantID: 1, BookingID: 10, Reason: strings.Repeat("x", domain.MaxCancelReasonLength+1),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCancel_PublishFailureDoesNotFailOperation(t *testing.T) {
	repo := newFakeBookingRepo(booking(10, domain.StatusPending))
	pub := &fakePublisher{err: errors.New("queue full")}

	_, err := newService(repo, pub).Cancel(context.Background(), &models.CancelBookingRequest{TenantID: 1, BookingID: 10})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[10].Status)
}

func TestGetTenantBookings(t *testing.T) {
	repo := newFakeBookingRepo(booking(10, domain.StatusPending), booking(11, domain.StatusConfirmed))
	svc := newService(repo, &fakePublisher{})

	resp, err := svc.GetTenantBookings(context.Background(), &models.GetTenantBookingsRequest{
		TenantID:      1,
		BookingTypeID: ptr.Ptr(int64(2)),
		Status:        ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)

	_, err = svc.GetTenantBookings(context.Background(), &models.GetTenantBookingsRequest{TenantID: 1, Status: ptr.Ptr("bogus")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.GetTenantBookings(context.Background(), &models.GetTenantBookingsRequest{
		TenantID: 1, From: ptr.Ptr(now), To: ptr.Ptr(now),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetContactBookings_IncludesHistory(t *testing.T) {
	repo := newFakeBookingRepo(booking(10, domain.StatusCompleted))

	_, err := newService(repo, &fakePublisher{}).GetContactBookings(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.True(t, repo.lastFilter.IncludeInactive)
	require.NotNil(t, repo.lastFilter.ContactID)
	assert.Equal(t, int64(5), *repo.lastFilter.ContactID)
}

func TestGetByID(t *testing.T) {
	repo := newFakeBookingRepo(booking(10, domain.StatusPending))
	svc := newService(repo, &fakePublisher{})

	resp, err := svc.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "ABCD2345", resp.ReferenceCode)

	_, err = svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
