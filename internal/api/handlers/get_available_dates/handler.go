package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
)

const (
	msgInvalidBookingTypeID = "некорректный ID типа бронирования"
	msgInvalidHorizon       = "некорректный горизонт, ожидается число дней"
	msgHorizonOutOfRange    = "горизонт вне допустимого диапазона"
	msgBookingTypeNotFound  = "тип бронирования не найден"
	msgBookingTypeInactive  = "тип бронирования недоступен для записи"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-types/{bookingTypeId}/available-dates
// Query params: horizonDays (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingTypeID, err := handlers.PathInt64(r, "bookingTypeId")
	if err != nil {
		h.logger.Warn("GET /booking-types/{id}/available-dates - Invalid booking type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingTypeID)
		return
	}

	useCaseReq := &getAvailableDates.Request{BookingTypeID: bookingTypeID}

	if raw := r.URL.Query().Get("horizonDays"); raw != "" {
		horizon, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /booking-types/{id}/available-dates - Invalid horizon: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHorizon)
			return
		}
		useCaseReq.HorizonDays = &horizon
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrInvalidHorizon):
			h.logger.Warn("GET /booking-types/{id}/available-dates - Horizon out of range: %v", err)
			handlers.RespondBadRequest(w, msgHorizonOutOfRange)

		case errors.Is(err, getAvailableDates.ErrBookingTypeNotFound):
			h.logger.Warn("GET /booking-types/{id}/available-dates - Booking type not found: booking_type_id=%d", bookingTypeID)
			handlers.RespondNotFound(w, msgBookingTypeNotFound)

		case errors.Is(err, getAvailableDates.ErrBookingTypeInactive):
			h.logger.Warn("GET /booking-types/{id}/available-dates - Booking type inactive: booking_type_id=%d", bookingTypeID)
			handlers.RespondConflict(w, msgBookingTypeInactive)

		default:
			h.logger.Error("GET /booking-types/{id}/available-dates - Failed to get dates: booking_type_id=%d, error=%v",
				bookingTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking-types/{id}/available-dates - Dates retrieved successfully: booking_type_id=%d, dates_count=%d",
		bookingTypeID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
