package get_contact_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
)

const (
	msgInvalidContactID = "некорректный ID контакта"
	msgMissingTenantID  = "отсутствует ID арендатора"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/contacts/{contactId}/bookings
// Возвращает всю историю контакта, включая завершённые и отменённые
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	contactID, err := handlers.PathInt64(r, "contactId")
	if err != nil {
		h.logger.Warn("GET /contacts/{id}/bookings - Invalid contact ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidContactID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /contacts/{id}/bookings - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	result, err := h.service.GetContactBookings(r.Context(), tenantID, contactID)
	if err != nil {
		h.logger.Error("GET /contacts/{id}/bookings - Failed to get bookings: contact_id=%d, tenant_id=%d, error=%v",
			contactID, tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /contacts/{id}/bookings - Bookings retrieved successfully: contact_id=%d, count=%d",
		contactID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
