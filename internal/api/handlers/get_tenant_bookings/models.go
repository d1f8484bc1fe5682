package get_tenant_bookings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// ParseQueryParams собирает фильтр из query параметров
// status, from, to (RFC3339), bookingTypeId, contactId, includeInactive
func ParseQueryParams(r *http.Request, tenantID int64) (*models.GetTenantBookingsRequest, error) {
	query := r.URL.Query()
	req := &models.GetTenantBookingsRequest{TenantID: tenantID}

	var err error
	if req.BookingTypeID, err = handlers.QueryInt64(r, "bookingTypeId"); err != nil {
		return nil, fmt.Errorf("bookingTypeId: %w", err)
	}
	if req.ContactID, err = handlers.QueryInt64(r, "contactId"); err != nil {
		return nil, fmt.Errorf("contactId: %w", err)
	}
	if req.From, err = handlers.QueryTime(r, "from"); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if req.To, err = handlers.QueryTime(r, "to"); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
