package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantId must be positive", ErrInvalidInput)
	}
	if req.BookingTypeID <= 0 {
		return fmt.Errorf("%w: bookingTypeId must be positive", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}
	if !req.Start.After(now) {
		return fmt.Errorf("%w: start must be in the future", ErrInvalidInput)
	}

	if err := validateCustomer(req.Customer); err != nil {
		return err
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateCustomer проверяет имя и хотя бы один контакт клиента
func validateCustomer(c domain.Customer) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name must be at most %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	email := c.NormalizedEmail()
	if email == nil && c.NormalizedPhone() == nil {
		return fmt.Errorf("%w: customer email or phone is required", ErrInvalidInput)
	}

	if email != nil {
		addr, err := mail.ParseAddress(*email)
		if err != nil || addr.Address != *email {
			return fmt.Errorf("%w: invalid customer email", ErrInvalidInput)
		}
	}

	return nil
}
