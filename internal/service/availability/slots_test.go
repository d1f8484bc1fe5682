package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// 2024-06-03 is a Monday
var monday = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func rule(id int64, day time.Weekday, start, end string) domain.AvailabilityRule {
	s, err := domain.ParseMinuteOfDay(start)
	if err != nil {
		panic(err)
	}
	e, err := domain.ParseMinuteOfDay(end)
	if err != nil {
		panic(err)
	}
	return domain.AvailabilityRule{ID: id, BookingTypeID: 1, DayOfWeek: day, StartTime: s, EndTime: e}
}

func starts(slots []domain.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.Format(domain.TimeFormat)
	}
	return out
}

func TestGenerateSlots_FullDay(t *testing.T) {
	slots := GenerateSlots(monday, time.UTC, 30, []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "17:00")})

	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Start.Format(domain.TimeFormat))
	assert.Equal(t, "16:30", slots[15].Start.Format(domain.TimeFormat))
	assert.Equal(t, "17:00", slots[15].End.Format(domain.TimeFormat))
	for i, s := range slots {
		assert.Equal(t, 30*time.Minute, s.End.Sub(s.Start))
		if i > 0 {
			assert.Equal(t, slots[i-1].End, s.Start, "slots tile the window without gaps")
		}
	}
}

func TestGenerateSlots_DropsRemainder(t *testing.T) {
	slots := GenerateSlots(monday, time.UTC, 45, []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "10:00")})

	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].Start.Format(domain.TimeFormat))
	assert.Equal(t, "09:45", slots[0].End.Format(domain.TimeFormat))
}

func TestGenerateSlots_RulesAreIndependent(t *testing.T) {
	rules := []domain.AvailabilityRule{
		rule(2, time.Monday, "10:20", "11:00"),
		rule(1, time.Monday, "09:00", "10:20"),
		rule(3, time.Tuesday, "09:00", "17:00"),
	}

	slots := GenerateSlots(monday, time.UTC, 30, rules)

	// 09:00-10:20 gives 09:00, 09:30 (20 min left over), 10:20-11:00 gives 10:20 only
	assert.Equal(t, []string{"09:00", "09:30", "10:20"}, starts(slots))
}

func TestGenerateSlots_Empty(t *testing.T) {
	rules := []domain.AvailabilityRule{rule(1, time.Tuesday, "09:00", "17:00")}

	assert.Empty(t, GenerateSlots(monday, time.UTC, 30, rules))
	assert.Empty(t, GenerateSlots(monday, time.UTC, 30, nil))
	assert.Empty(t, GenerateSlots(monday, time.UTC, 0, []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "17:00")}))
	assert.Empty(t, GenerateSlots(monday, time.UTC, 90, []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "10:00")}))
}

func TestGenerateSlots_ResolvesTenantTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	slots := GenerateSlots(monday, loc, 60, []domain.AvailabilityRule{rule(1, time.Monday, "09:00", "10:00")})

	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2024, 6, 3, 6, 0, 0, 0, time.UTC), slots[0].Start.UTC())
}

func TestGenerateSlots_EndOfDayRule(t *testing.T) {
	slots := GenerateSlots(monday, time.UTC, 60, []domain.AvailabilityRule{rule(1, time.Monday, "22:00", "24:00")})

	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), slots[1].End)
}
