package get_available_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingTypeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/bookingtype"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// UseCase use case для получения дат, в которые у типа есть окна доступности
// Наличие свободных слотов в эти даты не проверяется
type UseCase struct {
	bookingTypeRepo    BookingTypeRepository
	timezoneResolver   TimezoneResolver
	txManager          TransactionManager
	timeProvider       TimeProvider
	logger             Logger
	defaultHorizonDays int
	maxHorizonDays     int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingTypeRepo BookingTypeRepository,
	timezoneResolver TimezoneResolver,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
	defaultHorizonDays, maxHorizonDays int,
) *UseCase {
	return &UseCase{
		bookingTypeRepo:    bookingTypeRepo,
		timezoneResolver:   timezoneResolver,
		txManager:          txManager,
		timeProvider:       timeProvider,
		logger:             logger,
		defaultHorizonDays: defaultHorizonDays,
		maxHorizonDays:     maxHorizonDays,
	}
}

// Execute выполняет use case получения дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	horizon := uc.defaultHorizonDays
	if req.HorizonDays != nil {
		horizon = *req.HorizonDays
	}

	uc.logger.Info("GetAvailableDates: bookingType=%d, horizonDays=%d", req.BookingTypeID, horizon)

	if horizon < 1 || horizon > uc.maxHorizonDays {
		uc.logger.Warn("GetAvailableDates: horizonDays=%d outside 1..%d", horizon, uc.maxHorizonDays)
		return nil, fmt.Errorf("%w: horizonDays must be between 1 and %d", ErrInvalidHorizon, uc.maxHorizonDays)
	}

	bt, rules, err := uc.load(ctx, req.BookingTypeID)
	if err != nil {
		return nil, err
	}

	loc := uc.timezoneResolver.Resolve(ctx, bt.TenantID)
	dates := availability.AvailableDates(uc.timeProvider.Now(), loc, horizon, rules)

	uc.logger.Info("GetAvailableDates: %d dates for type id=%d within %d days", len(dates), bt.ID, horizon)

	return &Response{
		BookingTypeID: bt.ID,
		Timezone:      loc.String(),
		HorizonDays:   horizon,
		Dates:         dates,
	}, nil
}

// load читает тип и его правила из одного снимка
func (uc *UseCase) load(ctx context.Context, bookingTypeID int64) (*domain.BookingType, []domain.AvailabilityRule, error) {
	var (
		bt    *domain.BookingType
		rules []domain.AvailabilityRule
	)

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		bt, rules, err = uc.read(txCtx, bookingTypeID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingTypeNotFound), errors.Is(err, ErrBookingTypeInactive), errors.Is(err, ErrInternal):
			return nil, nil, err
		default:
			uc.logger.Error("GetAvailableDates: read transaction failed: %v", err)
			return nil, nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return bt, rules, nil
}

func (uc *UseCase) read(ctx context.Context, bookingTypeID int64) (*domain.BookingType, []domain.AvailabilityRule, error) {
	bt, err := uc.bookingTypeRepo.GetByID(ctx, bookingTypeID)
	if err != nil {
		if errors.Is(err, bookingTypeRepo.ErrBookingTypeNotFound) {
			uc.logger.Warn("GetAvailableDates: booking type id=%d not found", bookingTypeID)
			return nil, nil, ErrBookingTypeNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get booking type id=%d: %v", bookingTypeID, err)
		return nil, nil, fmt.Errorf("%w: failed to get booking type: %v", ErrInternal, err)
	}
	if !bt.IsActive {
		uc.logger.Warn("GetAvailableDates: booking type id=%d is inactive", bookingTypeID)
		return nil, nil, ErrBookingTypeInactive
	}

	rules, err := uc.bookingTypeRepo.ListRules(ctx, bt.ID)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get rules for type id=%d: %v", bt.ID, err)
		return nil, nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	return bt, rules, nil
}
