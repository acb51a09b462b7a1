package models

import "time"

// BookingStatus enumerates the lifecycle states of a calendar entry. This is
// the canonical set stored in the bookings table; legacy values from the old
// hosted backend are normalised on ingest via NormalizeStatus.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingDropped   BookingStatus = "dropped"
	BookingRejected  BookingStatus = "rejected"
	// BookingBlocked marks a mirrored blocked-date entry. Terminal: it is
	// created only by the block-date flow and never transitions.
	BookingBlocked BookingStatus = "blocked"
)

// BookingCreator identifies who created an entry; only user-created pending
// entries go through the approval workflow.
type BookingCreator string

const (
	CreatedByPhotographer BookingCreator = "photographer"
	CreatedByUser         BookingCreator = "user"
)

// ServiceTypeBlocked is the reserved service type of mirrored blocked entries.
const ServiceTypeBlocked = "blocked"

// BookingEntry is one calendar item: a booking or a mirrored blocked day.
type BookingEntry struct {
	ID             string         `db:"id" json:"id"`
	PhotographerID string         `db:"photographer_id" json:"photographer_id"`
	CustomerID     *string        `db:"customer_id" json:"customer_id,omitempty"`
	ClientName     string         `db:"client_name" json:"client_name"`
	ClientEmail    string         `db:"client_email" json:"client_email"`
	ClientPhone    string         `db:"client_phone" json:"client_phone"`
	EventDate      time.Time      `db:"event_date" json:"event_date"`
	StartTime      string         `db:"start_time" json:"start_time"`
	EndTime        string         `db:"end_time" json:"end_time"`
	ServiceType    string         `db:"service_type" json:"service_type"`
	Package        string         `db:"package" json:"package"`
	Price          float64        `db:"price" json:"price"`
	Notes          string         `db:"notes" json:"notes"`
	CreatedBy      BookingCreator `db:"created_by" json:"created_by"`
	Status         BookingStatus  `db:"status" json:"status"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// BookingView decorates an entry with display fields derived at projection
// time. Color is never persisted.
type BookingView struct {
	BookingEntry
	Color string `json:"color"`
}

// NewBookingView derives the display view for an entry.
func NewBookingView(entry BookingEntry) BookingView {
	return BookingView{BookingEntry: entry, Color: StatusColor(entry.Status)}
}

// Display colors per status. Keep in sync with the web client's palette.
const (
	ColorBlue   = "blue"
	ColorYellow = "yellow"
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorGray   = "gray"
	ColorViolet = "violet"
)

// StatusColor maps a status to its display color.
func StatusColor(status BookingStatus) string {
	switch status {
	case BookingConfirmed:
		return ColorBlue
	case BookingPending:
		return ColorYellow
	case BookingCompleted:
		return ColorGreen
	case BookingDropped:
		return ColorRed
	case BookingRejected:
		return ColorGray
	case BookingBlocked:
		return ColorViolet
	default:
		return ColorGray
	}
}

// ValidStatus reports whether the value belongs to the canonical enum.
func ValidStatus(status BookingStatus) bool {
	switch status {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingDropped, BookingRejected, BookingBlocked:
		return true
	default:
		return false
	}
}

// NormalizeStatus maps legacy hosted-backend statuses onto the canonical
// enum. Canonical values pass through; unknown values are rejected.
func NormalizeStatus(raw string) (BookingStatus, bool) {
	switch BookingStatus(raw) {
	case "in_progress":
		return BookingConfirmed, true
	case "cancelled", "refunded":
		return BookingDropped, true
	default:
		status := BookingStatus(raw)
		if ValidStatus(status) {
			return status, true
		}
		return "", false
	}
}

// BookingFilter captures criteria for listing bookings.
type BookingFilter struct {
	PhotographerID string
	CustomerID     string
	Status         *BookingStatus
	DateFrom       *time.Time
	DateTo         *time.Time
	Page           int
	PageSize       int
}
