package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingTypeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/bookingtype"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	bookingRepo      BookingRepository
	bookingTypeRepo  BookingTypeRepository
	timezoneResolver TimezoneResolver
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	bookingTypeRepo BookingTypeRepository,
	timezoneResolver TimezoneResolver,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		bookingTypeRepo:  bookingTypeRepo,
		timezoneResolver: timezoneResolver,
		txManager:        txManager,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: bookingType=%d, date=%s", req.BookingTypeID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Тип, правила и бронирования читаются из одного снимка
	var resp *Response
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		res, err := uc.collect(txCtx, req)
		if err != nil {
			return err
		}
		resp = res
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingTypeNotFound), errors.Is(err, ErrBookingTypeInactive), errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("GetAvailableSlots: read transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return resp, nil
}

// collect шаги чтения внутри транзакции
func (uc *UseCase) collect(ctx context.Context, req *Request) (*Response, error) {
	// 2.1. Получаем тип бронирования
	bt, err := uc.bookingTypeRepo.GetByID(ctx, req.BookingTypeID)
	if err != nil {
		if errors.Is(err, bookingTypeRepo.ErrBookingTypeNotFound) {
			uc.logger.Warn("GetAvailableSlots: booking type id=%d not found", req.BookingTypeID)
			return nil, ErrBookingTypeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get booking type id=%d: %v", req.BookingTypeID, err)
		return nil, fmt.Errorf("%w: failed to get booking type: %v", ErrInternal, err)
	}
	if !bt.IsActive {
		uc.logger.Warn("GetAvailableSlots: booking type id=%d is inactive", req.BookingTypeID)
		return nil, ErrBookingTypeInactive
	}

	// 2.2. Часовой пояс арендатора
	loc := uc.timezoneResolver.Resolve(ctx, bt.TenantID)

	// 2.3. Правила на день недели календарной даты
	year, month, day := req.Date.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	rules, err := uc.bookingTypeRepo.ListRulesForDay(ctx, bt.ID, date.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get rules for type id=%d: %v", bt.ID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	resp := &Response{
		BookingTypeID:   bt.ID,
		Date:            date,
		Timezone:        loc.String(),
		DurationMinutes: bt.DurationMinutes,
		Slots:           []domain.Slot{},
	}

	// 2.4. Генерируем слоты
	slots := availability.GenerateSlots(date, loc, bt.DurationMinutes, rules)
	if len(slots) == 0 {
		uc.logger.Info("GetAvailableSlots: no availability rules for type id=%d on %s", bt.ID, date.Format(domain.DateFormat))
		return resp, nil
	}

	// 2.5. Активные бронирования, пересекающие окна дня
	from, to := bounds(slots)
	bookings, err := uc.bookingRepo.ListActiveInRange(ctx, bt.ID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for type id=%d: %v", bt.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 2.6. Убираем занятые и прошедшие слоты
	resp.Slots = availability.FilterAvailable(slots, bookings, bt.ID, uc.timeProvider.Now().In(loc))

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for type id=%d on %s",
		len(resp.Slots), len(slots), bt.ID, date.Format(domain.DateFormat))

	return resp, nil
}

// bounds минимальное начало и максимальный конец слотов
func bounds(slots []domain.Slot) (time.Time, time.Time) {
	from, to := slots[0].Start, slots[0].End
	for _, s := range slots[1:] {
		if s.Start.Before(from) {
			from = s.Start
		}
		if s.End.After(to) {
			to = s.End
		}
	}
	return from, to
}
