package bookingtypes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingTypeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/bookingtype"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookingtypes/models"
)

// Service сервис администрирования типов бронирования и их расписания
type Service struct {
	bookingTypeRepo BookingTypeRepository
	formRepo        FormRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса типов бронирования
func NewService(
	bookingTypeRepo BookingTypeRepository,
	formRepo FormRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingTypeRepo: bookingTypeRepo,
		formRepo:        formRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create создает тип бронирования арендатора
func (s *Service) Create(ctx context.Context, req *models.CreateBookingTypeRequest) (*models.BookingTypeResponse, error) {
	s.logger.Info("CreateBookingType: tenant=%d name=%q duration=%d", req.TenantID, req.Name, req.DurationMinutes)

	bt := &domain.BookingType{
		TenantID:        req.TenantID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive == nil || *req.IsActive,
	}
	if err := bt.Validate(); err != nil {
		s.logger.Warn("CreateBookingType: validation failed for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.bookingTypeRepo.Create(ctx, bt)
	if err != nil {
		s.logger.Error("CreateBookingType: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBookingType: created booking type id=%d for tenant=%d", created.ID, req.TenantID)
	return models.FromDomainBookingType(created, nil, nil), nil
}

// GetByID получает тип бронирования вместе с правилами и привязанными формами
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.BookingTypeResponse, error) {
	bt, err := s.getOwned(ctx, "GetBookingType", tenantID, id)
	if err != nil {
		return nil, err
	}

	rules, err := s.bookingTypeRepo.ListRules(ctx, id)
	if err != nil {
		s.logger.Error("GetBookingType: failed to list rules for type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - list rules: %v", ErrInternal, err)
	}

	formIDs, err := s.formRepo.ListLinkedFormIDs(ctx, id)
	if err != nil {
		s.logger.Error("GetBookingType: failed to list forms for type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - list forms: %v", ErrInternal, err)
	}

	return models.FromDomainBookingType(bt, rules, formIDs), nil
}

// List получает все типы бронирования арендатора
func (s *Service) List(ctx context.Context, tenantID int64) (*models.BookingTypeListResponse, error) {
	types, err := s.bookingTypeRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("ListBookingTypes: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookingTypeListResponse{BookingTypes: make([]models.BookingTypeResponse, 0, len(types))}
	for _, bt := range types {
		resp.BookingTypes = append(resp.BookingTypes, *models.FromDomainBookingType(bt, nil, nil))
	}
	return resp, nil
}

// Update частично обновляет тип бронирования
// Изменение длительности не затрагивает уже созданные бронирования
func (s *Service) Update(ctx context.Context, req *models.UpdateBookingTypeRequest) (*models.BookingTypeResponse, error) {
	s.logger.Info("UpdateBookingType: tenant=%d type id=%d", req.TenantID, req.BookingTypeID)

	var updated *domain.BookingType
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		bt, err := s.getOwned(txCtx, "UpdateBookingType", req.TenantID, req.BookingTypeID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			bt.Name = strings.TrimSpace(*req.Name)
		}
		if req.DurationMinutes != nil {
			bt.DurationMinutes = *req.DurationMinutes
		}
		if req.IsActive != nil {
			bt.IsActive = *req.IsActive
		}

		if err := bt.Validate(); err != nil {
			s.logger.Warn("UpdateBookingType: validation failed for type id=%d: %v", req.BookingTypeID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		updated, err = s.bookingTypeRepo.Update(txCtx, bt)
		if errors.Is(err, bookingTypeRepo.ErrBookingTypeNotFound) {
			return ErrBookingTypeNotFound
		}
		if err != nil {
			s.logger.Error("UpdateBookingType: repository error for type id=%d: %v", req.BookingTypeID, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateBookingType: updated type id=%d (duration=%d, active=%t)", updated.ID, updated.DurationMinutes, updated.IsActive)
	return models.FromDomainBookingType(updated, nil, nil), nil
}

// Delete удаляет тип бронирования без бронирований
// Если бронирования есть (в любом статусе), возвращает ErrHasBookings: каскадного удаления нет
func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	s.logger.Info("DeleteBookingType: tenant=%d type id=%d", tenantID, id)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getOwned(txCtx, "DeleteBookingType", tenantID, id); err != nil {
			return err
		}

		hasBookings, err := s.bookingTypeRepo.HasBookings(txCtx, id)
		if err != nil {
			s.logger.Error("DeleteBookingType: failed to check bookings for type id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - has bookings: %v", ErrInternal, err)
		}
		if hasBookings {
			s.logger.Warn("DeleteBookingType: type id=%d still has bookings", id)
			return ErrHasBookings
		}

		err = s.bookingTypeRepo.Delete(txCtx, tenantID, id)
		switch {
		case err == nil:
			s.logger.Info("DeleteBookingType: deleted type id=%d", id)
			return nil
		case errors.Is(err, bookingTypeRepo.ErrReferenced):
			s.logger.Warn("DeleteBookingType: type id=%d got a booking concurrently", id)
			return ErrHasBookings
		case errors.Is(err, bookingTypeRepo.ErrBookingTypeNotFound):
			return ErrBookingTypeNotFound
		default:
			s.logger.Error("DeleteBookingType: repository error for type id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	})
}

// AddRule добавляет недельное окно доступности
func (s *Service) AddRule(ctx context.Context, req *models.AddRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("AddRule: tenant=%d type id=%d day=%d %s-%s",
		req.TenantID, req.BookingTypeID, req.DayOfWeek, req.StartTime, req.EndTime)

	start, err := domain.ParseMinuteOfDay(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	end, err := domain.ParseMinuteOfDay(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	rule := &domain.AvailabilityRule{
		BookingTypeID: req.BookingTypeID,
		DayOfWeek:     time.Weekday(req.DayOfWeek),
		StartTime:     start,
		EndTime:       end,
	}
	if err := rule.Validate(); err != nil {
		s.logger.Warn("AddRule: validation failed for type id=%d: %v", req.BookingTypeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.getOwned(ctx, "AddRule", req.TenantID, req.BookingTypeID); err != nil {
		return nil, err
	}

	created, err := s.bookingTypeRepo.AddRule(ctx, rule)
	if err != nil {
		s.logger.Error("AddRule: repository error for type id=%d: %v", req.BookingTypeID, err)
		return nil, fmt.Errorf("%w: AddRule - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainRule(*created)
	return &resp, nil
}

// DeleteRule удаляет правило доступности
func (s *Service) DeleteRule(ctx context.Context, tenantID, bookingTypeID, ruleID int64) error {
	s.logger.Info("DeleteRule: tenant=%d type id=%d rule id=%d", tenantID, bookingTypeID, ruleID)

	if _, err := s.getOwned(ctx, "DeleteRule", tenantID, bookingTypeID); err != nil {
		return err
	}

	err := s.bookingTypeRepo.DeleteRule(ctx, bookingTypeID, ruleID)
	if errors.Is(err, bookingTypeRepo.ErrRuleNotFound) {
		s.logger.Warn("DeleteRule: rule id=%d not found for type id=%d", ruleID, bookingTypeID)
		return ErrRuleNotFound
	}
	if err != nil {
		s.logger.Error("DeleteRule: repository error for rule id=%d: %v", ruleID, err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ListRules правила доступности типа
func (s *Service) ListRules(ctx context.Context, tenantID, bookingTypeID int64) ([]models.RuleResponse, error) {
	if _, err := s.getOwned(ctx, "ListRules", tenantID, bookingTypeID); err != nil {
		return nil, err
	}

	rules, err := s.bookingTypeRepo.ListRules(ctx, bookingTypeID)
	if err != nil {
		s.logger.Error("ListRules: repository error for type id=%d: %v", bookingTypeID, err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(rules), nil
}

// LinkForm привязывает форму арендатора к типу бронирования
// Для каждой привязанной формы при создании бронирования создаётся заявка-заглушка
func (s *Service) LinkForm(ctx context.Context, tenantID, bookingTypeID, formID int64) error {
	s.logger.Info("LinkForm: tenant=%d type id=%d form id=%d", tenantID, bookingTypeID, formID)

	if _, err := s.getOwned(ctx, "LinkForm", tenantID, bookingTypeID); err != nil {
		return err
	}

	exists, err := s.formRepo.FormExists(ctx, tenantID, formID)
	if err != nil {
		s.logger.Error("LinkForm: failed to check form id=%d: %v", formID, err)
		return fmt.Errorf("%w: LinkForm - form exists: %v", ErrInternal, err)
	}
	if !exists {
		s.logger.Warn("LinkForm: form id=%d not found for tenant=%d", formID, tenantID)
		return ErrFormNotFound
	}

	if err := s.formRepo.LinkForm(ctx, bookingTypeID, formID); err != nil {
		s.logger.Error("LinkForm: repository error for type id=%d form id=%d: %v", bookingTypeID, formID, err)
		return fmt.Errorf("%w: LinkForm - repository error: %v", ErrInternal, err)
	}

	return nil
}

// getOwned загружает тип и проверяет, что он принадлежит арендатору
func (s *Service) getOwned(ctx context.Context, op string, tenantID, id int64) (*domain.BookingType, error) {
	bt, err := s.bookingTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingTypeRepo.ErrBookingTypeNotFound) {
			s.logger.Warn("%s: booking type id=%d not found", op, id)
			return nil, ErrBookingTypeNotFound
		}
		s.logger.Error("%s: repository error for booking type id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get booking type: %v", ErrInternal, op, err)
	}

	if bt.TenantID != tenantID {
		s.logger.Warn("%s: booking type id=%d does not belong to tenant=%d", op, id, tenantID)
		return nil, ErrBookingTypeNotFound
	}

	return bt, nil
}
