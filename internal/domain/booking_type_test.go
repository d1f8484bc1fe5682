package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinuteOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    MinuteOfDay
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "24:00", want: EndOfDay},
		{in: "24:01", wantErr: true},
		{in: "9:30", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMinuteOfDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestAvailabilityRule_Validate(t *testing.T) {
	ok := AvailabilityRule{DayOfWeek: time.Monday, StartTime: 540, EndTime: 1020}
	assert.NoError(t, ok.Validate())

	whole := AvailabilityRule{DayOfWeek: time.Sunday, StartTime: 0, EndTime: EndOfDay}
	assert.NoError(t, whole.Validate())

	for name, rule := range map[string]AvailabilityRule{
		"empty window":  {DayOfWeek: time.Monday, StartTime: 600, EndTime: 600},
		"reversed":      {DayOfWeek: time.Monday, StartTime: 700, EndTime: 600},
		"bad weekday":   {DayOfWeek: 7, StartTime: 0, EndTime: 60},
		"past midnight": {DayOfWeek: time.Monday, StartTime: 0, EndTime: EndOfDay + 1},
	} {
		assert.ErrorIs(t, rule.Validate(), ErrValidation, name)
	}
}

func TestBookingType_Validate(t *testing.T) {
	assert.NoError(t, (&BookingType{Name: "Consultation", DurationMinutes: 30}).Validate())
	assert.ErrorIs(t, (&BookingType{Name: " ", DurationMinutes: 30}).Validate(), ErrValidation)
	assert.ErrorIs(t, (&BookingType{Name: "Zero", DurationMinutes: 0}).Validate(), ErrValidation)
	assert.ErrorIs(t, (&BookingType{Name: "Negative", DurationMinutes: -15}).Validate(), ErrValidation)
}
