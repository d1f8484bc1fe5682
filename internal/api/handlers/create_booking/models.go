package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BookingTypeID int64             `json:"bookingTypeId"`
	Start         string            `json:"start"` // RFC3339, "2025-10-15T10:00:00+03:00"
	Customer      CustomerRequest   `json:"customer"`
	Notes         *string           `json:"notes,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type CustomerRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking           *models.BookingResponse `json:"booking"`
	Contact           ContactResponse         `json:"contact"`
	ContactCreated    bool                    `json:"contactCreated"`
	FormSubmissionIDs []int64                 `json:"formSubmissionIds"`
}

type ContactResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID int64) (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TenantID:      tenantID,
		BookingTypeID: r.BookingTypeID,
		Start:         start,
		Customer: domain.Customer{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		Notes:    r.Notes,
		Metadata: r.Metadata,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	submissions := resp.FormSubmissionIDs
	if submissions == nil {
		submissions = []int64{}
	}

	return &CreateBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Contact: ContactResponse{
			ID:    resp.Contact.ID,
			Name:  resp.Contact.Name,
			Email: resp.Contact.Email,
			Phone: resp.Contact.Phone,
		},
		ContactCreated:    resp.ContactCreated,
		FormSubmissionIDs: submissions,
	}
}
