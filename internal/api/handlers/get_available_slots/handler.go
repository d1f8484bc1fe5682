package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidBookingTypeID = "некорректный ID типа бронирования"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBookingTypeNotFound  = "тип бронирования не найден"
	msgBookingTypeInactive  = "тип бронирования недоступен для записи"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-types/{bookingTypeId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingTypeID, err := handlers.PathInt64(r, "bookingTypeId")
	if err != nil {
		h.logger.Warn("GET /booking-types/{id}/available-slots - Invalid booking type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingTypeID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /booking-types/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(bookingTypeID, dateStr)
	if err != nil {
		h.logger.Warn("GET /booking-types/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBookingTypeNotFound):
			h.logger.Warn("GET /booking-types/{id}/available-slots - Booking type not found: booking_type_id=%d", bookingTypeID)
			handlers.RespondNotFound(w, msgBookingTypeNotFound)

		case errors.Is(err, getAvailableSlots.ErrBookingTypeInactive):
			h.logger.Warn("GET /booking-types/{id}/available-slots - Booking type inactive: booking_type_id=%d", bookingTypeID)
			handlers.RespondConflict(w, msgBookingTypeInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /booking-types/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /booking-types/{id}/available-slots - Failed to get slots: booking_type_id=%d, error=%v",
				bookingTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking-types/{id}/available-slots - Slots retrieved successfully: booking_type_id=%d, slots_count=%d",
		bookingTypeID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
