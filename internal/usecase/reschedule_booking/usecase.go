package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	bookingTypeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/bookingtype"
)

const conflictOperation = "reschedule"

// UseCase use case для переноса бронирования на новое время
// Новое время не проверяется по правилам доступности, только на пересечения
type UseCase struct {
	bookingRepo     BookingRepository
	bookingTypeRepo BookingTypeRepository
	checker         AvailabilityChecker
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	bookingTypeRepo BookingTypeRepository,
	checker AvailabilityChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		bookingTypeRepo: bookingTypeRepo,
		checker:         checker,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: tenant=%d, booking=%d, newStart=%s",
		req.TenantID, req.BookingID, req.NewStart.Format(time.RFC3339))

	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		result    *Response
		collector events.Collector
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		collector.Reset()

		res, err := uc.reschedule(txCtx, req)
		if err != nil {
			return err
		}

		previous := domain.SnapshotBooking(res.Previous)
		collector.Add(events.NewEvent(domain.EventBookingUpdated, req.TenantID, uc.timeProvider.Now(),
			domain.BookingEventPayload{Booking: domain.SnapshotBooking(res.Booking), Previous: &previous}))

		result = res
		return nil
	})
	if err != nil {
		return nil, uc.mapError(req, err)
	}

	collector.Flush(ctx, uc.publisher, uc.logger)

	uc.logger.Info("RescheduleBooking: booking id=%d moved from %s to %s",
		req.BookingID, result.Previous.StartTime.Format(time.RFC3339), result.Booking.StartTime.Format(time.RFC3339))

	return result, nil
}

func (uc *UseCase) reschedule(ctx context.Context, req *Request) (*Response, error) {
	// 1. Блокировка типа первым запросом транзакции
	if _, err := uc.bookingRepo.LockBookingTypeOf(ctx, req.TenantID, req.BookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: failed to lock booking type: %w", ErrInternal, err)
	}

	// 2. Бронирование под блокировкой строки
	current, err := uc.bookingRepo.GetByID(ctx, req.TenantID, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	switch current.Status {
	case domain.StatusCompleted, domain.StatusCancelled:
		return nil, fmt.Errorf("%w: booking is %s", ErrNotReschedulable, current.Status)
	}

	// 3. Длительность берётся у типа на момент переноса
	bt, err := uc.bookingTypeRepo.GetByID(ctx, current.BookingTypeID)
	if err != nil {
		if errors.Is(err, bookingTypeRepo.ErrBookingTypeNotFound) {
			return nil, fmt.Errorf("%w: booking type id=%d is missing", ErrInternal, current.BookingTypeID)
		}
		return nil, fmt.Errorf("%w: failed to get booking type: %w", ErrInternal, err)
	}

	newStart := req.NewStart
	newEnd := newStart.Add(bt.Duration())

	// 4. Проверка без учёта самого бронирования
	available, err := uc.checker.IsAvailable(ctx, bt.ID, newStart, newEnd, &current.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if !available {
		return nil, ErrSlotUnavailable
	}

	// 5. Перенос
	updated, err := uc.bookingRepo.UpdateInterval(ctx, req.TenantID, current.ID, newStart, newEnd)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSlotConflict):
			return nil, fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		default:
			return nil, fmt.Errorf("%w: failed to update interval: %w", ErrInternal, err)
		}
	}

	return &Response{Booking: updated, Previous: current}, nil
}

func (uc *UseCase) mapError(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		uc.logger.Warn("RescheduleBooking: booking id=%d not found for tenant=%d", req.BookingID, req.TenantID)
		return ErrBookingNotFound
	case errors.Is(err, ErrNotReschedulable):
		uc.logger.Warn("RescheduleBooking: booking id=%d cannot be rescheduled: %v", req.BookingID, err)
		return err
	case errors.Is(err, ErrSlotUnavailable):
		uc.metrics.IncSlotConflict(conflictOperation)
		uc.logger.Warn("RescheduleBooking: slot unavailable for booking id=%d at %s", req.BookingID, req.NewStart)
		return ErrSlotUnavailable
	case errors.Is(err, ErrInternal):
		uc.logger.Error("RescheduleBooking: %v", err)
		return err
	default:
		uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
