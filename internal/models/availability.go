package models

import "time"

// AvailabilitySlot is a weekly recurring window during which a photographer
// accepts bookings of a given service type. Slots are advisory: they feed the
// availability-management view and are not cross-checked against bookings.
type AvailabilitySlot struct {
	ID             string    `db:"id" json:"id"`
	PhotographerID string    `db:"photographer_id" json:"photographer_id"`
	DayOfWeek      int       `db:"day_of_week" json:"day_of_week"` // 0 = Sunday
	StartTime      string    `db:"start_time" json:"start_time"`
	EndTime        string    `db:"end_time" json:"end_time"`
	ServiceType    string    `db:"service_type" json:"service_type"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// BlockedDate marks a whole day as non-bookable. Each blocked date is
// mirrored by a BookingEntry with status=blocked so calendar grids can render
// it; the two rows are written and deleted in one transaction.
type BlockedDate struct {
	ID             string    `db:"id" json:"id"`
	PhotographerID string    `db:"photographer_id" json:"photographer_id"`
	Date           time.Time `db:"date" json:"date"`
	Reason         string    `db:"reason" json:"reason"`
	MirrorEntryID  string    `db:"mirror_entry_id" json:"mirror_entry_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
