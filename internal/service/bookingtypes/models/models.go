package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// CreateBookingTypeRequest запрос на создание типа бронирования
type CreateBookingTypeRequest struct {
	TenantID        int64  `json:"-"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	IsActive        *bool  `json:"isActive,omitempty"` // по умолчанию true
}

// UpdateBookingTypeRequest запрос на обновление типа бронирования
// Все поля опциональны - обновляются только переданные значения
type UpdateBookingTypeRequest struct {
	TenantID        int64   `json:"-"`
	BookingTypeID   int64   `json:"-"`
	Name            *string `json:"name,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"` // не меняет длительность существующих бронирований
	IsActive        *bool   `json:"isActive,omitempty"`
}

// AddRuleRequest запрос на добавление правила доступности
type AddRuleRequest struct {
	TenantID      int64  `json:"-"`
	BookingTypeID int64  `json:"-"`
	DayOfWeek     int    `json:"dayOfWeek"` // 0 = воскресенье
	StartTime     string `json:"startTime"` // "09:00"
	EndTime       string `json:"endTime"`   // "17:00", допускается "24:00"
}

// Response модели

// BookingTypeResponse ответ с данными типа бронирования
type BookingTypeResponse struct {
	ID              int64          `json:"id"`
	TenantID        int64          `json:"tenantId"`
	Name            string         `json:"name"`
	DurationMinutes int            `json:"durationMinutes"`
	IsActive        bool           `json:"isActive"`
	Rules           []RuleResponse `json:"rules"`
	FormIDs         []int64        `json:"formIds"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// RuleResponse правило доступности
type RuleResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BookingTypeListResponse ответ со списком типов
type BookingTypeListResponse struct {
	BookingTypes []BookingTypeResponse `json:"bookingTypes"`
}

// Методы конвертации

// FromDomainBookingType конвертирует domain модель в DTO
func FromDomainBookingType(bt *domain.BookingType, rules []domain.AvailabilityRule, formIDs []int64) *BookingTypeResponse {
	if bt == nil {
		return nil
	}

	if formIDs == nil {
		formIDs = []int64{}
	}

	return &BookingTypeResponse{
		ID:              bt.ID,
		TenantID:        bt.TenantID,
		Name:            bt.Name,
		DurationMinutes: bt.DurationMinutes,
		IsActive:        bt.IsActive,
		Rules:           FromDomainRules(rules),
		FormIDs:         formIDs,
		CreatedAt:       bt.CreatedAt,
		UpdatedAt:       bt.UpdatedAt,
	}
}

// FromDomainRule конвертирует правило в DTO
func FromDomainRule(r domain.AvailabilityRule) RuleResponse {
	return RuleResponse{
		ID:        r.ID,
		DayOfWeek: int(r.DayOfWeek),
		StartTime: r.StartTime.String(),
		EndTime:   r.EndTime.String(),
	}
}

// FromDomainRules конвертирует список правил в DTO
func FromDomainRules(rules []domain.AvailabilityRule) []RuleResponse {
	resp := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		resp = append(resp, FromDomainRule(r))
	}
	return resp
}
