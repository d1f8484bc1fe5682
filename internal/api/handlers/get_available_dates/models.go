package get_available_dates

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	BookingTypeID int64           `json:"bookingTypeId"`
	Timezone      string          `json:"timezone"`
	HorizonDays   int             `json:"horizonDays"`
	Dates         []AvailableDate `json:"dates"`
}

type AvailableDate struct {
	Date      string `json:"date"`
	DayOfWeek int    `json:"dayOfWeek"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]AvailableDate, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = AvailableDate{Date: d.Date.Format(domain.DateFormat), DayOfWeek: int(d.DayOfWeek)}
	}

	return &AvailableDatesResponse{
		BookingTypeID: resp.BookingTypeID,
		Timezone:      resp.Timezone,
		HorizonDays:   resp.HorizonDays,
		Dates:         dates,
	}
}
