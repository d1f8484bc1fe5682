package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AvailableDates даты из [today, today+horizonDays), в день недели которых есть хотя бы одно правило
// today берётся как календарная дата в loc
func AvailableDates(today time.Time, loc *time.Location, horizonDays int, rules []domain.AvailabilityRule) []domain.AvailableDate {
	dates := make([]domain.AvailableDate, 0)
	if horizonDays <= 0 {
		return dates
	}
	if loc == nil {
		loc = time.UTC
	}

	var open [7]bool
	for _, r := range rules {
		if r.DayOfWeek >= time.Sunday && r.DayOfWeek <= time.Saturday {
			open[r.DayOfWeek] = true
		}
	}

	year, month, day := today.In(loc).Date()
	for i := 0; i < horizonDays; i++ {
		date := time.Date(year, month, day+i, 0, 0, 0, 0, loc)
		weekday := date.Weekday()
		if open[weekday] {
			dates = append(dates, domain.AvailableDate{Date: date, DayOfWeek: weekday})
		}
	}

	return dates
}
