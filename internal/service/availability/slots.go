package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// GenerateSlots нарезает окна правил на слоты длительностью durationMinutes
//
// Каждое правило обрабатывается независимо: курсор стартует с начала окна,
// слот [cursor, cursor+duration) добавляется, пока cursor+duration <= конца окна.
// Остаток короче одной длительности отбрасывается, слоты не переходят через границу правил.
// Минуты правил интерпретируются в часовом поясе loc на календарную дату date.
// Правила другого дня недели игнорируются. Результат каждый раз новый слайс.
func GenerateSlots(date time.Time, loc *time.Location, durationMinutes int, rules []domain.AvailabilityRule) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if durationMinutes <= 0 {
		return slots
	}
	if loc == nil {
		loc = time.UTC
	}

	year, month, day := date.Date()
	weekday := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
	duration := time.Duration(durationMinutes) * time.Minute

	for _, rule := range sortedRulesFor(weekday, rules) {
		for cursor := int(rule.StartTime); cursor+durationMinutes <= int(rule.EndTime); cursor += durationMinutes {
			start := domain.MinuteOfDay(cursor).On(year, month, day, loc)
			slots = append(slots, domain.Slot{Start: start, End: start.Add(duration)})
		}
	}

	return slots
}

// RulesForWeekday отбирает правила указанного дня недели
func RulesForWeekday(weekday time.Weekday, rules []domain.AvailabilityRule) []domain.AvailabilityRule {
	matched := make([]domain.AvailabilityRule, 0, len(rules))
	for _, r := range rules {
		if r.DayOfWeek == weekday {
			matched = append(matched, r)
		}
	}
	return matched
}

// sortedRulesFor стабильный порядок правил дня: по началу окна, затем по ID
func sortedRulesFor(weekday time.Weekday, rules []domain.AvailabilityRule) []domain.AvailabilityRule {
	matched := RulesForWeekday(weekday, rules)
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].StartTime != matched[j].StartTime {
			return matched[i].StartTime < matched[j].StartTime
		}
		return matched[i].ID < matched[j].ID
	})
	return matched
}
