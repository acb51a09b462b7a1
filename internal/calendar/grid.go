// Package calendar holds the pure date and slot arithmetic behind the
// photographer booking calendar: month/week grids, the half-hour slot
// sequence, and past/current classification. Everything here is stateless;
// functions that care about "now" take it as an argument.
package calendar

import "time"

// MonthGrid returns the cells of a month view for the month containing ref.
// The slice starts with one nil per weekday preceding the 1st (0 = Sunday),
// followed by one date per day of the month. No trailing padding is added;
// renderers wrap the slice into 7 columns.
func MonthGrid(ref time.Time) []*time.Time {
	year, month, _ := ref.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]*time.Time, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, nil)
	}
	for day := 1; day <= daysInMonth; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, ref.Location())
		cells = append(cells, &d)
	}
	return cells
}

// WeekGrid returns the 7 dates of the week containing ref, starting from the
// Sunday on or before it.
func WeekGrid(ref time.Time) [7]time.Time {
	start := Truncate(ref).AddDate(0, 0, -int(ref.Weekday()))
	var days [7]time.Time
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// Truncate drops the time-of-day component, keeping the location.
func Truncate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// IsPastDate reports whether date falls strictly before the day containing now.
// Only the date component participates, so any time-of-day on either argument
// yields the same answer.
func IsPastDate(now, date time.Time) bool {
	return Truncate(date).Before(Truncate(now))
}

// IsPastTime reports whether the slot on the given date starts strictly
// before now. All-day entries are past only once the whole day is.
func IsPastTime(now, date time.Time, slot string) bool {
	if slot == AllDay {
		return IsPastDate(now, date)
	}
	start, ok := slotStart(date, slot)
	if !ok {
		return false
	}
	return start.Before(now)
}

// IsCurrentTimeSlot reports whether now falls within [slot, slot+30m) on the
// given date.
func IsCurrentTimeSlot(now, date time.Time, slot string) bool {
	start, ok := slotStart(date, slot)
	if !ok {
		return false
	}
	end := start.Add(SlotDuration)
	return !now.Before(start) && now.Before(end)
}

func slotStart(date time.Time, slot string) (time.Time, bool) {
	hour, minute, ok := ParseClock(slot)
	if !ok {
		return time.Time{}, false
	}
	year, month, day := date.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, date.Location()), true
}
