package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BookingType is a bookable service with a fixed duration
type BookingType struct {
	ID              int64
	TenantID        int64
	Name            string
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration returns the slot length as time.Duration
func (t *BookingType) Duration() time.Duration {
	return time.Duration(t.DurationMinutes) * time.Minute
}

// Validate checks name and duration bounds
func (t *BookingType) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: booking type name is required", ErrValidation)
	}
	if len(t.Name) > MaxBookingTypeNameLength {
		return fmt.Errorf("%w: booking type name is longer than %d", ErrValidation, MaxBookingTypeNameLength)
	}
	if t.DurationMinutes < MinDurationMinutes || t.DurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes", ErrValidation, MinDurationMinutes, MaxDurationMinutes)
	}
	return nil
}

// MinuteOfDay minutes since local midnight, 0..1440
type MinuteOfDay int

// EndOfDay is the exclusive upper bound, written as "24:00"
const EndOfDay MinuteOfDay = 24 * 60

// ParseMinuteOfDay parses "HH:MM"; "24:00" is accepted as an end bound
func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", ErrValidation, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", ErrValidation, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", ErrValidation, s)
	}

	if h == 24 && m == 0 {
		return EndOfDay, nil
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: time %q is out of range", ErrValidation, s)
	}

	return MinuteOfDay(h*60 + m), nil
}

// String formats as HH:MM
func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// On resolves the wall-clock minute on the given calendar date in loc
func (m MinuteOfDay) On(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, int(m)/60, int(m)%60, 0, 0, loc)
}

// AvailabilityRule recurring weekly open-hours window
type AvailabilityRule struct {
	ID            int64
	BookingTypeID int64
	DayOfWeek     time.Weekday // 0 = Sunday
	StartTime     MinuteOfDay
	EndTime       MinuteOfDay
	CreatedAt     time.Time
}

// Validate checks weekday and window bounds
func (r *AvailabilityRule) Validate() error {
	if r.DayOfWeek < time.Sunday || r.DayOfWeek > time.Saturday {
		return fmt.Errorf("%w: day of week must be 0..6", ErrValidation)
	}
	if r.StartTime < 0 || r.EndTime > EndOfDay {
		return fmt.Errorf("%w: rule window must be within the day", ErrValidation)
	}
	if r.StartTime >= r.EndTime {
		return fmt.Errorf("%w: rule start %s must be before end %s", ErrValidation, r.StartTime, r.EndTime)
	}
	return nil
}
