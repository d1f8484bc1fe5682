package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	TenantID  int64  `json:"-"`
	BookingID int64  `json:"-"`
	Status    string `json:"status"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	TenantID  int64  `json:"-"`
	BookingID int64  `json:"-"`
	Reason    string `json:"reason"`
}

// GetTenantBookingsRequest запрос на получение бронирований арендатора
type GetTenantBookingsRequest struct {
	TenantID        int64      `json:"tenantId"`
	BookingTypeID   *int64     `json:"bookingTypeId,omitempty"`   // Фильтр по типу (опционально)
	ContactID       *int64     `json:"contactId,omitempty"`       // Фильтр по контакту (опционально)
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTenantBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		TenantID:        r.TenantID,
		BookingTypeID:   r.BookingTypeID,
		ContactID:       r.ContactID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64             `json:"id"`
	TenantID      int64             `json:"tenantId"`
	ContactID     int64             `json:"contactId"`
	BookingTypeID int64             `json:"bookingTypeId"`
	ReferenceCode string            `json:"referenceCode"`
	StartTime     time.Time         `json:"startTime"`
	EndTime       time.Time         `json:"endTime"`
	Status        string            `json:"status"`
	Notes         *string           `json:"notes,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CancelledAt   *time.Time        `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		TenantID:      b.TenantID,
		ContactID:     b.ContactID,
		BookingTypeID: b.BookingTypeID,
		ReferenceCode: b.ReferenceCode,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        string(b.Status),
		Notes:         b.Notes,
		Metadata:      b.Metadata,
		CancelledAt:   b.CancelledAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
