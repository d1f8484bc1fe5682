package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями и их статусами
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование арендатора по ID
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for tenant=%d", id, tenantID)

	booking, err := s.bookingRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found for tenant=%d", id, tenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetTenantBookings получает бронирования арендатора с фильтрацией
// По умолчанию возвращает только активные (pending, confirmed)
func (s *Service) GetTenantBookings(ctx context.Context, req *models.GetTenantBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTenantBookings: fetching bookings for tenant=%d, status=%v, includeInactive=%t",
		req.TenantID, req.Status, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTenantBookings: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		s.logger.Warn("GetTenantBookings: invalid period for tenant=%d", req.TenantID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetTenantBookings: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetTenantBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTenantBookings: fetched %d bookings for tenant=%d", len(bookings), req.TenantID)
	return models.FromDomainBookingList(bookings), nil
}

// GetContactBookings история бронирований контакта, включая неактивные
func (s *Service) GetContactBookings(ctx context.Context, tenantID, contactID int64) (*models.BookingListResponse, error) {
	return s.GetTenantBookings(ctx, &models.GetTenantBookingsRequest{
		TenantID:        tenantID,
		ContactID:       &contactID,
		IncludeInactive: true,
	})
}

// UpdateStatus переводит бронирование в новый статус по правилам автомата состояний
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d tenant=%d to status=%s", req.BookingID, req.TenantID, req.Status)

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, req.BookingID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, err := s.transition(ctx, "UpdateStatus", req.TenantID, req.BookingID, newStatus, nil)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование, причина сохраняется в metadata
// Завершённые, неявки и уже отменённые бронирования отменить нельзя
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d tenant=%d", req.BookingID, req.TenantID)

	reason := strings.TrimSpace(req.Reason)
	if len([]rune(reason)) > domain.MaxCancelReasonLength {
		s.logger.Warn("Cancel: reason too long for booking id=%d", req.BookingID)
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	metadata := map[string]string{}
	if reason != "" {
		metadata[domain.MetadataCancelReason] = reason
	}

	booking, err := s.transition(ctx, "Cancel", req.TenantID, req.BookingID, domain.StatusCancelled, metadata)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// transition загружает бронирование, проверяет переход и выполняет условный UPDATE
// После коммита публикует booking.cancelled или booking.updated
func (s *Service) transition(
	ctx context.Context,
	op string,
	tenantID, bookingID int64,
	to domain.BookingStatus,
	metadata map[string]string,
) (*domain.Booking, error) {
	var previous, updated *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.bookingRepo.GetByID(txCtx, tenantID, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("%s: booking id=%d not found for tenant=%d", op, bookingID, tenantID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - get booking: %v", ErrInternal, op, err)
		}

		if err := domain.ValidateTransition(current.Status, to); err != nil {
			s.logger.Warn("%s: booking id=%d rejected transition %s -> %s", op, bookingID, current.Status, to)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
		}

		t := bookingRepo.StatusTransition{
			TenantID:  tenantID,
			BookingID: bookingID,
			From:      current.Status,
			To:        to,
			Metadata:  metadata,
		}
		if to == domain.StatusCancelled {
			cancelledAt := s.timeProvider.Now().UTC()
			t.CancelledAt = &cancelledAt
		}

		updated, err = s.bookingRepo.TransitionStatus(txCtx, t)
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			return s.resolveLostUpdate(txCtx, op, tenantID, bookingID, current.Status, to)
		}
		if err != nil {
			return fmt.Errorf("%w: %s - transition status: %v", ErrInternal, op, err)
		}

		previous = current
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrBookingNotFound) && !errors.Is(err, ErrInvalidTransition) {
			s.logger.Error("%s: failed for booking id=%d: %v", op, bookingID, err)
		}
		return nil, err
	}

	s.logger.Info("%s: booking id=%d moved %s -> %s", op, bookingID, previous.Status, updated.Status)
	s.publish(ctx, op, statusEventName(to), previous, updated)

	return updated, nil
}

// resolveLostUpdate разбирает условный UPDATE без затронутых строк:
// бронирования нет - NotFound, статус сменился параллельно - InvalidTransition
func (s *Service) resolveLostUpdate(
	ctx context.Context,
	op string,
	tenantID, bookingID int64,
	expected, to domain.BookingStatus,
) error {
	current, err := s.bookingRepo.GetByID(ctx, tenantID, bookingID)
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d disappeared during transition", op, bookingID)
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %s - re-read booking: %v", ErrInternal, op, err)
	}

	s.logger.Warn("%s: booking id=%d status changed concurrently %s -> %s", op, bookingID, expected, current.Status)
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
}

func (s *Service) publish(ctx context.Context, op, name string, previous, updated *domain.Booking) {
	prev := domain.SnapshotBooking(previous)
	event := events.NewEvent(name, updated.TenantID, s.timeProvider.Now(), domain.BookingEventPayload{
		Booking:  domain.SnapshotBooking(updated),
		Previous: &prev,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("%s: event %s for booking id=%d not published: %v", op, name, updated.ID, err)
	}
}

func statusEventName(to domain.BookingStatus) string {
	if to == domain.StatusCancelled {
		return domain.EventBookingCancelled
	}
	return domain.EventBookingUpdated
}
