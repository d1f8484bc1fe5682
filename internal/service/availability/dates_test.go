package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestAvailableDates(t *testing.T) {
	rules := []domain.AvailabilityRule{
		rule(1, time.Monday, "09:00", "12:00"),
		rule(2, time.Monday, "13:00", "17:00"),
		rule(3, time.Wednesday, "09:00", "12:00"),
	}
	today := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC) // Monday afternoon

	dates := AvailableDates(today, time.UTC, 14, rules)

	require.Len(t, dates, 4)
	assert.Equal(t, "2024-06-03", dates[0].Date.Format(domain.DateFormat))
	assert.Equal(t, time.Monday, dates[0].DayOfWeek)
	assert.Equal(t, "2024-06-05", dates[1].Date.Format(domain.DateFormat))
	assert.Equal(t, "2024-06-10", dates[2].Date.Format(domain.DateFormat))
	assert.Equal(t, "2024-06-12", dates[3].Date.Format(domain.DateFormat))
}

func TestAvailableDates_UsesTenantCalendar(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	// Sunday 22:00 UTC is already Monday in UTC+5
	now := time.Date(2024, 6, 2, 22, 0, 0, 0, time.UTC)

	dates := AvailableDates(now, loc, 1, []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "10:00")})

	require.Len(t, dates, 1)
	assert.Equal(t, time.Monday, dates[0].DayOfWeek)
}

func TestAvailableDates_NoRules(t *testing.T) {
	assert.Empty(t, AvailableDates(monday, time.UTC, 30, nil))
	assert.Empty(t, AvailableDates(monday, time.UTC, 0, []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "10:00")}))
}
