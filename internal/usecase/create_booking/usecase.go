package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	bookingTypeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/bookingtype"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/contacts"
	"github.com/m04kA/SMC-AppointmentService/internal/service/refcode"
)

const (
	// maxInsertAttempts повторы транзакции при гонке за код бронирования (23505)
	maxInsertAttempts = 3

	conflictOperation = "create"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	bookingTypeRepo  BookingTypeRepository
	formRepo         FormRepository
	checker          AvailabilityChecker
	contactResolver  ContactResolver
	codeAllocator    ReferenceCodeAllocator
	timezoneResolver TimezoneResolver
	txManager        TransactionManager
	publisher        EventPublisher
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	bookingTypeRepo BookingTypeRepository,
	formRepo FormRepository,
	checker AvailabilityChecker,
	contactResolver ContactResolver,
	codeAllocator ReferenceCodeAllocator,
	timezoneResolver TimezoneResolver,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		bookingTypeRepo:  bookingTypeRepo,
		formRepo:         formRepo,
		checker:          checker,
		contactResolver:  contactResolver,
		codeAllocator:    codeAllocator,
		timezoneResolver: timezoneResolver,
		txManager:        txManager,
		publisher:        publisher,
		metrics:          metrics,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка правил, доступности и вставка выполняются в одной сериализуемой транзакции под advisory lock типа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%d, bookingType=%d, start=%s",
		req.TenantID, req.BookingTypeID, req.Start.Format(time.RFC3339))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// Пояс арендатора определяется до транзакции: резолвер может ходить в WorkspaceService
	loc := uc.timezoneResolver.Resolve(ctx, req.TenantID)

	var (
		result    *Response
		collector events.Collector
		err       error
	)

	// 2. Сериализуемая транзакция; при занятом коде (гонка вставок) повторяем целиком
	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			collector.Reset()

			res, err := uc.reserve(txCtx, req, loc, &collector)
			if err != nil {
				return err
			}

			result = res
			return nil
		})

		if !errors.Is(err, bookingRepo.ErrDuplicateReferenceCode) {
			break
		}
		uc.logger.Warn("CreateBooking: reference code taken concurrently, attempt %d/%d", attempt, maxInsertAttempts)
	}

	if err != nil {
		return nil, uc.mapError(req, err)
	}

	// 3. После коммита публикуем события
	collector.Flush(ctx, uc.publisher, uc.logger)
	uc.metrics.IncBookingCreated()

	uc.logger.Info("CreateBooking: successfully created booking id=%d code=%s for tenant=%d",
		result.Booking.ID, result.Booking.ReferenceCode, req.TenantID)

	return result, nil
}

// reserve шаги внутри одной попытки транзакции
func (uc *UseCase) reserve(ctx context.Context, req *Request, loc *time.Location, collector *events.Collector) (*Response, error) {
	// 2.1. Блокировка типа первым запросом транзакции
	if err := uc.bookingRepo.LockBookingType(ctx, req.BookingTypeID); err != nil {
		return nil, fmt.Errorf("%w: failed to lock booking type: %w", ErrInternal, err)
	}

	// 2.2. Тип бронирования арендатора
	bt, err := uc.bookingTypeRepo.GetByID(ctx, req.BookingTypeID)
	if err != nil {
		if errors.Is(err, bookingTypeRepo.ErrBookingTypeNotFound) {
			return nil, ErrBookingTypeNotFound
		}
		return nil, fmt.Errorf("%w: failed to get booking type: %w", ErrInternal, err)
	}
	if bt.TenantID != req.TenantID {
		return nil, ErrBookingTypeNotFound
	}
	if !bt.IsActive {
		return nil, ErrBookingTypeInactive
	}

	// 2.3. Начало должно совпадать со слотом из правил на локальную дату
	if err := uc.matchSlot(ctx, bt, req.Start, loc); err != nil {
		return nil, err
	}

	// 2.4. Конец интервала фиксируется по текущей длительности типа
	start := req.Start
	end := start.Add(bt.Duration())

	// 2.5. Повторная проверка пересечений под блокировкой
	available, err := uc.checker.IsAvailable(ctx, bt.ID, start, end, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if !available {
		return nil, ErrSlotUnavailable
	}

	// 2.6. Контакт клиента
	contact, created, err := uc.contactResolver.Resolve(ctx, req.TenantID, req.Customer)
	if err != nil {
		if errors.Is(err, contacts.ErrInvalidCustomer) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: failed to resolve contact: %w", ErrInternal, err)
	}
	if created {
		collector.Add(events.NewEvent(domain.EventContactCreated, req.TenantID, uc.timeProvider.Now(),
			domain.ContactEventPayload{Contact: domain.SnapshotContact(contact)}))
	}

	// 2.7. Код бронирования
	code, err := uc.codeAllocator.Allocate(ctx, uc.bookingRepo.ReferenceCodeExists)
	if err != nil {
		if errors.Is(err, refcode.ErrExhausted) {
			return nil, ErrReferenceCodeExhausted
		}
		return nil, fmt.Errorf("%w: failed to allocate reference code: %w", ErrInternal, err)
	}

	// 2.8. Вставка; ограничение EXCLUDE страхует от пересечений мимо блокировки
	booking, err := uc.bookingRepo.Create(ctx, &domain.Booking{
		TenantID:      req.TenantID,
		ContactID:     contact.ID,
		BookingTypeID: bt.ID,
		ReferenceCode: code,
		StartTime:     start,
		EndTime:       end,
		Status:        domain.StatusPending,
		Notes:         trimNotes(req.Notes),
		Metadata:      req.Metadata,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSlotConflict):
			return nil, fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
		case errors.Is(err, bookingRepo.ErrDuplicateReferenceCode):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
	}

	// 2.9. Заготовки анкет по формам типа
	formIDs, err := uc.formRepo.ListLinkedFormIDs(ctx, bt.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list linked forms: %w", ErrInternal, err)
	}

	submissionIDs := make([]int64, 0, len(formIDs))
	for _, formID := range formIDs {
		sub, err := uc.formRepo.CreateSubmission(ctx, &domain.FormSubmission{
			TenantID:  req.TenantID,
			FormID:    formID,
			BookingID: booking.ID,
			ContactID: contact.ID,
			Status:    domain.FormSubmissionPending,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create form submission form=%d: %w", ErrInternal, formID, err)
		}
		submissionIDs = append(submissionIDs, sub.ID)
	}

	contactSnapshot := domain.SnapshotContact(contact)
	collector.Add(events.NewEvent(domain.EventBookingCreated, req.TenantID, uc.timeProvider.Now(),
		domain.BookingEventPayload{Booking: domain.SnapshotBooking(booking), Contact: &contactSnapshot}))

	return &Response{
		Booking:           booking,
		Contact:           contact,
		ContactCreated:    created,
		FormSubmissionIDs: submissionIDs,
	}, nil
}

// matchSlot сверяет начало с сеткой слотов правил дня недели в поясе арендатора
func (uc *UseCase) matchSlot(ctx context.Context, bt *domain.BookingType, start time.Time, loc *time.Location) error {
	local := start.In(loc)

	rules, err := uc.bookingTypeRepo.ListRulesForDay(ctx, bt.ID, local.Weekday())
	if err != nil {
		return fmt.Errorf("%w: failed to list availability rules: %w", ErrInternal, err)
	}

	for _, slot := range availability.GenerateSlots(local, loc, bt.DurationMinutes, rules) {
		if slot.Start.Equal(start) {
			return nil
		}
	}

	return ErrOutsideAvailability
}

// mapError логирует результат транзакции и приводит ошибки к ошибкам use case
func (uc *UseCase) mapError(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrBookingTypeNotFound):
		uc.logger.Warn("CreateBooking: booking type id=%d not found for tenant=%d", req.BookingTypeID, req.TenantID)
		return err
	case errors.Is(err, ErrBookingTypeInactive):
		uc.logger.Warn("CreateBooking: booking type id=%d is inactive", req.BookingTypeID)
		return err
	case errors.Is(err, ErrOutsideAvailability):
		uc.logger.Warn("CreateBooking: start %s is outside availability of type id=%d", req.Start, req.BookingTypeID)
		return ErrOutsideAvailability
	case errors.Is(err, ErrSlotUnavailable):
		uc.metrics.IncSlotConflict(conflictOperation)
		uc.logger.Warn("CreateBooking: slot unavailable for type id=%d at %s", req.BookingTypeID, req.Start)
		return ErrSlotUnavailable
	case errors.Is(err, ErrInvalidInput):
		uc.logger.Warn("CreateBooking: invalid customer for tenant=%d: %v", req.TenantID, err)
		return err
	case errors.Is(err, ErrReferenceCodeExhausted), errors.Is(err, bookingRepo.ErrDuplicateReferenceCode):
		uc.metrics.IncReferenceCodeExhausted()
		uc.logger.Error("CreateBooking: reference code allocation exhausted for tenant=%d: %v", req.TenantID, err)
		return ErrReferenceCodeExhausted
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	s := strings.TrimSpace(*notes)
	if s == "" {
		return nil
	}
	return &s
}
