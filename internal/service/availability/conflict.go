package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// FilterAvailable убирает слоты, пересекающиеся с активными бронированиями того же типа,
// и слоты, начало которых не строго позже now
func FilterAvailable(slots []domain.Slot, bookings []*domain.Booking, bookingTypeID int64, now time.Time) []domain.Slot {
	available := make([]domain.Slot, 0, len(slots))

	for _, slot := range slots {
		if !slot.Start.After(now) {
			continue
		}
		if conflicts(bookings, bookingTypeID, slot.Start, slot.End, nil) {
			continue
		}
		available = append(available, slot)
	}

	return available
}

// Checker проверка доступности интервала по данным хранилища
type Checker struct {
	bookingRepo BookingRepository
}

func NewChecker(bookingRepo BookingRepository) *Checker {
	return &Checker{bookingRepo: bookingRepo}
}

// IsAvailable возвращает false, если активное бронирование типа пересекает [start, end)
// Внутри транзакции на запись репозиторий блокирует найденные строки (FOR UPDATE).
// excludeBookingID исключает переносимое бронирование из проверки
func (c *Checker) IsAvailable(ctx context.Context, bookingTypeID int64, start, end time.Time, excludeBookingID *int64) (bool, error) {
	bookings, err := c.bookingRepo.ListActiveInRange(ctx, bookingTypeID, start, end)
	if err != nil {
		return false, fmt.Errorf("%w: IsAvailable - list bookings for type=%d: %w", ErrInternal, bookingTypeID, err)
	}

	return !conflicts(bookings, bookingTypeID, start, end, excludeBookingID), nil
}

func conflicts(bookings []*domain.Booking, bookingTypeID int64, start, end time.Time, excludeBookingID *int64) bool {
	for _, b := range bookings {
		if b.BookingTypeID != bookingTypeID || !b.IsActive() {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if domain.Overlaps(b.StartTime, b.EndTime, start, end) {
			return true
		}
	}
	return false
}
