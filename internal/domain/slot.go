package domain

import "time"

// Slot candidate bookable interval [Start, End)
type Slot struct {
	Start time.Time
	End   time.Time
}

// AvailableDate a calendar date with at least one availability rule
type AvailableDate struct {
	Date      time.Time
	DayOfWeek time.Weekday
}

// Overlaps is the half-open interval predicate used by every conflict check.
// Intervals touching at a boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
