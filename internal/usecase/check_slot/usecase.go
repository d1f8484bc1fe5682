package check_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingTypeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/bookingtype"
)

// UseCase use case проверки, свободен ли интервал
// Проверяется только пересечение с активными бронированиями, правила доступности не учитываются
type UseCase struct {
	bookingTypeRepo BookingTypeRepository
	checker         AvailabilityChecker
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingTypeRepo BookingTypeRepository, checker AvailabilityChecker, logger Logger) *UseCase {
	return &UseCase{
		bookingTypeRepo: bookingTypeRepo,
		checker:         checker,
		logger:          logger,
	}
}

// Execute выполняет use case проверки интервала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckSlot: bookingType=%d, start=%s, end=%s",
		req.BookingTypeID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}

	if _, err := uc.bookingTypeRepo.GetByID(ctx, req.BookingTypeID); err != nil {
		if errors.Is(err, bookingTypeRepo.ErrBookingTypeNotFound) {
			uc.logger.Warn("CheckSlot: booking type id=%d not found", req.BookingTypeID)
			return nil, ErrBookingTypeNotFound
		}
		uc.logger.Error("CheckSlot: failed to get booking type id=%d: %v", req.BookingTypeID, err)
		return nil, fmt.Errorf("%w: failed to get booking type: %v", ErrInternal, err)
	}

	available, err := uc.checker.IsAvailable(ctx, req.BookingTypeID, req.Start, req.End, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("CheckSlot: availability check failed for type id=%d: %v", req.BookingTypeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckSlot: type id=%d available=%t", req.BookingTypeID, available)

	return &Response{
		BookingTypeID: req.BookingTypeID,
		Start:         req.Start,
		End:           req.End,
		Available:     available,
	}, nil
}
