package check_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	checkSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/check_slot"
)

const (
	msgInvalidBookingTypeID = "некорректный ID типа бронирования"
	msgInvalidBookingID     = "некорректный excludeBookingId"
	msgInvalidInterval      = "start и end обязательны в формате RFC3339"
	msgBookingTypeNotFound  = "тип бронирования не найден"
)

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-types/{bookingTypeId}/availability
// Query params: start, end (RFC3339), excludeBookingId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingTypeID, err := handlers.PathInt64(r, "bookingTypeId")
	if err != nil {
		h.logger.Warn("GET /booking-types/{id}/availability - Invalid booking type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingTypeID)
		return
	}

	start, errStart := handlers.QueryTime(r, "start")
	end, errEnd := handlers.QueryTime(r, "end")
	if errStart != nil || errEnd != nil || start == nil || end == nil {
		h.logger.Warn("GET /booking-types/{id}/availability - Invalid interval: start=%q, end=%q",
			r.URL.Query().Get("start"), r.URL.Query().Get("end"))
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	excludeID, err := handlers.QueryInt64(r, "excludeBookingId")
	if err != nil {
		h.logger.Warn("GET /booking-types/{id}/availability - Invalid excludeBookingId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkSlot.Request{
		BookingTypeID:    bookingTypeID,
		Start:            *start,
		End:              *end,
		ExcludeBookingID: excludeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkSlot.ErrInvalidInput):
			h.logger.Warn("GET /booking-types/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, checkSlot.ErrBookingTypeNotFound):
			h.logger.Warn("GET /booking-types/{id}/availability - Booking type not found: booking_type_id=%d", bookingTypeID)
			handlers.RespondNotFound(w, msgBookingTypeNotFound)

		default:
			h.logger.Error("GET /booking-types/{id}/availability - Failed to check slot: booking_type_id=%d, error=%v",
				bookingTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking-types/{id}/availability - Slot checked: booking_type_id=%d, available=%t",
		bookingTypeID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
