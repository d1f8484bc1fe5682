package check_slot

import "time"

// Request модель запроса на проверку интервала
type Request struct {
	BookingTypeID    int64
	Start            time.Time
	End              time.Time
	ExcludeBookingID *int64 // бронирование, которое переносится
}

// Response модель ответа
type Response struct {
	BookingTypeID int64
	Start         time.Time
	End           time.Time
	Available     bool
}
