package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthGridLeadingPlaceholders(t *testing.T) {
	cases := []struct {
		name    string
		ref     time.Time
		leading int
		days    int
	}{
		{"september 2025 starts monday", date(2025, time.September, 15), 1, 30},
		{"june 2025 starts sunday", date(2025, time.June, 1), 0, 30},
		{"february 2024 leap year", date(2024, time.February, 29), 4, 29},
		{"february 2025", date(2025, time.February, 10), 6, 28},
		{"august 2026 starts saturday", date(2026, time.August, 31), 6, 31},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cells := MonthGrid(tc.ref)
			require.Len(t, cells, tc.leading+tc.days)
			for i := 0; i < tc.leading; i++ {
				assert.Nil(t, cells[i])
			}
			for i := 0; i < tc.days; i++ {
				cell := cells[tc.leading+i]
				require.NotNil(t, cell)
				assert.Equal(t, i+1, cell.Day())
				assert.Equal(t, tc.ref.Month(), cell.Month())
			}
		})
	}
}

func TestMonthGridReferenceDayIrrelevant(t *testing.T) {
	a := MonthGrid(date(2025, time.September, 1))
	b := MonthGrid(date(2025, time.September, 30))
	require.Equal(t, len(a), len(b))
	for i := range a {
		if a[i] == nil {
			assert.Nil(t, b[i])
			continue
		}
		assert.True(t, a[i].Equal(*b[i]))
	}
}

func TestWeekGridStartsSunday(t *testing.T) {
	for offset := 0; offset < 14; offset++ {
		ref := date(2025, time.September, 7).AddDate(0, 0, offset)
		week := WeekGrid(ref)
		assert.Equal(t, time.Sunday, week[0].Weekday())
		for i := 1; i < 7; i++ {
			assert.Equal(t, week[i-1].AddDate(0, 0, 1), week[i], "days must be consecutive")
		}
		assert.False(t, ref.Before(week[0]))
		assert.True(t, ref.Before(week[6].AddDate(0, 0, 1)))
	}
}

func TestWeekGridIgnoresTimeOfDay(t *testing.T) {
	morning := WeekGrid(time.Date(2025, time.September, 10, 8, 15, 0, 0, time.UTC))
	night := WeekGrid(time.Date(2025, time.September, 10, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, morning, night)
}

func TestIsPastDateTruncates(t *testing.T) {
	now := time.Date(2025, time.September, 25, 14, 30, 0, 0, time.UTC)

	assert.True(t, IsPastDate(now, date(2025, time.September, 24)))
	assert.False(t, IsPastDate(now, date(2025, time.September, 25)))
	assert.False(t, IsPastDate(now, date(2025, time.September, 26)))

	// Time-of-day on the candidate must not change the verdict.
	lateYesterday := time.Date(2025, time.September, 24, 23, 59, 59, 0, time.UTC)
	earlyToday := time.Date(2025, time.September, 25, 0, 0, 1, 0, time.UTC)
	assert.True(t, IsPastDate(now, lateYesterday))
	assert.False(t, IsPastDate(now, earlyToday))
}

func TestIsPastTime(t *testing.T) {
	now := time.Date(2025, time.September, 25, 14, 30, 0, 0, time.UTC)
	today := date(2025, time.September, 25)

	assert.True(t, IsPastTime(now, today, "14:00"))
	assert.False(t, IsPastTime(now, today, "14:30"))
	assert.False(t, IsPastTime(now, today, "15:00"))

	assert.True(t, IsPastTime(now, date(2025, time.September, 24), AllDay))
	assert.False(t, IsPastTime(now, today, AllDay))
}

func TestIsCurrentTimeSlot(t *testing.T) {
	today := date(2025, time.September, 25)

	now := time.Date(2025, time.September, 25, 14, 45, 0, 0, time.UTC)
	assert.True(t, IsCurrentTimeSlot(now, today, "14:30"))
	assert.False(t, IsCurrentTimeSlot(now, today, "14:00"))
	assert.False(t, IsCurrentTimeSlot(now, today, "15:00"))

	// Window is half-open: the slot boundary belongs to the next slot.
	boundary := time.Date(2025, time.September, 25, 15, 0, 0, 0, time.UTC)
	assert.False(t, IsCurrentTimeSlot(boundary, today, "14:30"))
	assert.True(t, IsCurrentTimeSlot(boundary, today, "15:00"))

	assert.False(t, IsCurrentTimeSlot(now, today, AllDay))
}
