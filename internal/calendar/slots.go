package calendar

import (
	"fmt"
	"time"
)

// AllDay is the sentinel time value for entries that occupy a whole day.
const AllDay = "all-day"

// SlotDuration is the granularity of the week and day views.
const SlotDuration = 30 * time.Minute

const (
	firstSlotHour = 6
	lastSlotHour  = 23
)

// HourlySlots returns the fixed sequence of rendered time slots, "06:00"
// through "23:30" at 30-minute steps. The result is a fresh slice on every
// call; callers may reorder or truncate it freely.
func HourlySlots() []string {
	slots := make([]string, 0, (lastSlotHour-firstSlotHour+1)*2)
	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:30", hour))
	}
	return slots
}

// ParseClock parses a fixed-width "HH:MM" value. It rejects the AllDay
// sentinel and anything malformed.
func ParseClock(value string) (hour, minute int, ok bool) {
	if len(value) != 5 || value[2] != ':' {
		return 0, 0, false
	}
	for _, idx := range [...]int{0, 1, 3, 4} {
		if value[idx] < '0' || value[idx] > '9' {
			return 0, 0, false
		}
	}
	hour = int(value[0]-'0')*10 + int(value[1]-'0')
	minute = int(value[3]-'0')*10 + int(value[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// SlotMatches reports whether an entry with the given start and end times
// belongs in the rendered slot at slotIndex. All-day entries anchor to the
// first slot of the day only, so they are not repeated down the column.
// Timed entries match their starting slot and every slot the
// [entryTime, entryEnd) interval covers. Comparison is lexicographic, which
// is ordering-correct for fixed-width zero-padded HH:MM strings.
func SlotMatches(entryTime, entryEnd, slot string, slotIndex int) bool {
	if entryTime == AllDay {
		return slotIndex == 0
	}
	if entryTime == slot {
		return true
	}
	if entryEnd == "" || entryEnd == AllDay {
		return false
	}
	return entryTime <= slot && entryEnd > slot
}

// Overlaps reports whether two [start, end) intervals on the same date
// intersect. An AllDay interval overlaps everything. A missing end is
// treated as a single slot.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	if aStart == AllDay || bStart == AllDay {
		return true
	}
	if aEnd == "" || aEnd == AllDay {
		aEnd = endOfSlot(aStart)
	}
	if bEnd == "" || bEnd == AllDay {
		bEnd = endOfSlot(bStart)
	}
	return aStart < bEnd && bStart < aEnd
}

func endOfSlot(start string) string {
	hour, minute, ok := ParseClock(start)
	if !ok {
		return start
	}
	minute += int(SlotDuration / time.Minute)
	hour += minute / 60
	minute %= 60
	if hour > 23 {
		hour, minute = 23, 59
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
