package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlySlotsShape(t *testing.T) {
	slots := HourlySlots()
	require.Len(t, slots, 36)
	assert.Equal(t, "06:00", slots[0])
	assert.Equal(t, "23:30", slots[len(slots)-1])
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i], "slots must be strictly increasing")
	}
}

func TestParseClock(t *testing.T) {
	hour, minute, ok := ParseClock("09:30")
	require.True(t, ok)
	assert.Equal(t, 9, hour)
	assert.Equal(t, 30, minute)

	for _, bad := range []string{AllDay, "", "9:30", "09-30", "24:00", "12:60", "ab:cd"} {
		_, _, ok := ParseClock(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestSlotMatchesAllDayAnchorsFirstSlot(t *testing.T) {
	assert.True(t, SlotMatches(AllDay, AllDay, "06:00", 0))
	assert.False(t, SlotMatches(AllDay, AllDay, "06:30", 1))
	assert.False(t, SlotMatches(AllDay, AllDay, "23:30", 35))
}

func TestSlotMatchesInterval(t *testing.T) {
	// Booking 10:00-12:00 occupies every half-hour row it covers.
	assert.True(t, SlotMatches("10:00", "12:00", "10:00", 8))
	assert.True(t, SlotMatches("10:00", "12:00", "11:30", 11))
	assert.False(t, SlotMatches("10:00", "12:00", "12:00", 12), "end is exclusive")
	assert.False(t, SlotMatches("10:00", "12:00", "09:30", 7))

	// Entries without an end time match only their starting slot.
	assert.True(t, SlotMatches("10:00", "", "10:00", 8))
	assert.False(t, SlotMatches("10:00", "", "10:30", 9))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps("10:00", "12:00", "11:00", "13:00"))
	assert.True(t, Overlaps("11:00", "13:00", "10:00", "12:00"))
	assert.False(t, Overlaps("10:00", "12:00", "12:00", "14:00"), "touching intervals do not overlap")
	assert.False(t, Overlaps("08:00", "09:00", "09:30", "10:00"))

	assert.True(t, Overlaps(AllDay, AllDay, "15:00", "16:00"))
	assert.True(t, Overlaps("15:00", "16:00", AllDay, AllDay))

	// Missing end behaves as one slot.
	assert.True(t, Overlaps("10:00", "", "10:15", "11:00"))
	assert.False(t, Overlaps("10:00", "", "10:30", "11:00"))
}
