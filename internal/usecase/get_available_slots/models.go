package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BookingTypeID int64     // ID типа бронирования
	Date          time.Time // Календарная дата (используются только год, месяц, день)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	BookingTypeID   int64         // ID типа бронирования
	Date            time.Time     // Дата, на которую запрашивались слоты
	Timezone        string        // Часовой пояс арендатора
	DurationMinutes int           // Длительность слота
	Slots           []domain.Slot // Свободные слоты по возрастанию начала окна правила
}
