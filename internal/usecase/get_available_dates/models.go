package get_available_dates

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель запроса на получение дат с доступностью
type Request struct {
	BookingTypeID int64 // ID типа бронирования
	HorizonDays   *int  // Горизонт в днях, nil = значение по умолчанию
}

// Response модель ответа со списком дат
type Response struct {
	BookingTypeID int64
	Timezone      string
	HorizonDays   int
	Dates         []domain.AvailableDate
}
