package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

const (
	msgInvalidTenantID     = "некорректный ID арендатора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStart        = "некорректное время начала, ожидается RFC3339"
	msgBookingTypeNotFound = "тип бронирования не найден"
	msgBookingTypeInactive = "тип бронирования недоступен для записи"
	msgSlotUnavailable     = "выбранное время уже занято"
	msgReferenceCodeBusy   = "не удалось выдать код бронирования, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathInt64(r, "tenantId")
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/bookings - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/bookings - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/bookings - Validation failed: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrBookingTypeNotFound):
			h.logger.Warn("POST /tenants/{id}/bookings - Booking type not found: tenant_id=%d, booking_type_id=%d",
				tenantID, req.BookingTypeID)
			handlers.RespondNotFound(w, msgBookingTypeNotFound)

		case errors.Is(err, createBooking.ErrBookingTypeInactive):
			h.logger.Warn("POST /tenants/{id}/bookings - Booking type inactive: booking_type_id=%d", req.BookingTypeID)
			handlers.RespondConflict(w, msgBookingTypeInactive)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /tenants/{id}/bookings - Slot unavailable: booking_type_id=%d, start=%s",
				req.BookingTypeID, req.Start)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrReferenceCodeExhausted):
			h.logger.Error("POST /tenants/{id}/bookings - Reference code exhausted: tenant_id=%d", tenantID)
			handlers.RespondServiceUnavailable(w, msgReferenceCodeBusy)

		default:
			h.logger.Error("POST /tenants/{id}/bookings - Failed to create booking: tenant_id=%d, booking_type_id=%d, error=%v",
				tenantID, req.BookingTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{id}/bookings - Booking created successfully: booking_id=%d, code=%s, tenant_id=%d",
		result.Booking.ID, result.Booking.ReferenceCode, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
