package models

import "time"

// Event groups delivered photos for one shoot.
type Event struct {
	ID             string    `db:"id" json:"id"`
	PhotographerID string    `db:"photographer_id" json:"photographer_id"`
	BookingID      *string   `db:"booking_id" json:"booking_id,omitempty"`
	Title          string    `db:"title" json:"title"`
	EventDate      time.Time `db:"event_date" json:"event_date"`
	PhotoCount     int       `db:"photo_count" json:"photo_count"`
	DownloadCount  int       `db:"download_count" json:"download_count"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// EventPhoto is one delivered image belonging to an event.
type EventPhoto struct {
	ID        string    `db:"id" json:"id"`
	EventID   string    `db:"event_id" json:"event_id"`
	FilePath  string    `db:"file_path" json:"-"`
	FileName  string    `db:"file_name" json:"file_name"`
	SizeBytes int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PhotoDownload records one signed-URL download of a photo.
type PhotoDownload struct {
	ID           string    `db:"id" json:"id"`
	PhotoID      string    `db:"photo_id" json:"photo_id"`
	UserID       *string   `db:"user_id" json:"user_id,omitempty"`
	DownloadedAt time.Time `db:"downloaded_at" json:"downloaded_at"`
}
