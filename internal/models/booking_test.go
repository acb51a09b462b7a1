package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusColor(t *testing.T) {
	cases := map[BookingStatus]string{
		BookingConfirmed: ColorBlue,
		BookingPending:   ColorYellow,
		BookingCompleted: ColorGreen,
		BookingDropped:   ColorRed,
		BookingRejected:  ColorGray,
		BookingBlocked:   ColorViolet,
	}
	for status, want := range cases {
		assert.Equal(t, want, StatusColor(status), "status %s", status)
	}
	assert.Equal(t, ColorGray, StatusColor("bogus"))
}

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want BookingStatus
	}{
		{"pending", BookingPending},
		{"confirmed", BookingConfirmed},
		{"completed", BookingCompleted},
		{"dropped", BookingDropped},
		{"rejected", BookingRejected},
		{"blocked", BookingBlocked},
		{"in_progress", BookingConfirmed},
		{"cancelled", BookingDropped},
		{"refunded", BookingDropped},
	}
	for _, tc := range cases {
		got, ok := NormalizeStatus(tc.raw)
		require.True(t, ok, "raw %q", tc.raw)
		assert.Equal(t, tc.want, got, "raw %q", tc.raw)
	}

	_, ok := NormalizeStatus("archived")
	assert.False(t, ok)
	_, ok = NormalizeStatus("")
	assert.False(t, ok)
}

func TestNewBookingViewDerivesColor(t *testing.T) {
	view := NewBookingView(BookingEntry{ID: "b-1", Status: BookingConfirmed})
	assert.Equal(t, ColorBlue, view.Color)
	assert.Equal(t, "b-1", view.ID)
}
