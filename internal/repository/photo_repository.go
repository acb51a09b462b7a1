package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
)

// PhotoRepository persists delivered event photos and download records. It
// also invokes the stats stored functions the legacy backend exposed by name.
type PhotoRepository struct {
	db *sqlx.DB
}

// NewPhotoRepository constructs a photo repository.
func NewPhotoRepository(db *sqlx.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// GetEvent fetches an event.
func (r *PhotoRepository) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	const query = `SELECT id, photographer_id, booking_id, title, event_date, photo_count, download_count, created_at
FROM events WHERE id = $1`
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent inserts an event.
func (r *PhotoRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO events (id, photographer_id, booking_id, title, event_date, photo_count, download_count, created_at)
VALUES (:id, :photographer_id, :booking_id, :title, :event_date, :photo_count, :download_count, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// GetPhoto fetches a delivered photo.
func (r *PhotoRepository) GetPhoto(ctx context.Context, id string) (*models.EventPhoto, error) {
	const query = `SELECT id, event_id, file_path, file_name, size_bytes, created_at
FROM event_photos WHERE id = $1`
	var photo models.EventPhoto
	if err := r.db.GetContext(ctx, &photo, query, id); err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListPhotosByEvent returns an event's photos ordered by creation time.
func (r *PhotoRepository) ListPhotosByEvent(ctx context.Context, eventID string) ([]models.EventPhoto, error) {
	const query = `SELECT id, event_id, file_path, file_name, size_bytes, created_at
FROM event_photos WHERE event_id = $1 ORDER BY created_at ASC`
	var photos []models.EventPhoto
	if err := r.db.SelectContext(ctx, &photos, query, eventID); err != nil {
		return nil, fmt.Errorf("list event photos: %w", err)
	}
	return photos, nil
}

// CreatePhoto inserts a delivered photo.
func (r *PhotoRepository) CreatePhoto(ctx context.Context, photo *models.EventPhoto) error {
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO event_photos (id, event_id, file_path, file_name, size_bytes, created_at)
VALUES (:id, :event_id, :file_path, :file_name, :size_bytes, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, photo); err != nil {
		return fmt.Errorf("create event photo: %w", err)
	}
	return nil
}

// RecordDownload inserts a download record for a photo.
func (r *PhotoRepository) RecordDownload(ctx context.Context, download *models.PhotoDownload) error {
	if download.ID == "" {
		download.ID = uuid.NewString()
	}
	if download.DownloadedAt.IsZero() {
		download.DownloadedAt = time.Now().UTC()
	}
	const query = `INSERT INTO photo_downloads (id, photo_id, user_id, downloaded_at)
VALUES (:id, :photo_id, :user_id, :downloaded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, download); err != nil {
		return fmt.Errorf("record photo download: %w", err)
	}
	return nil
}

// UpdateEventStats invokes the update_event_stats stored function for an event.
func (r *PhotoRepository) UpdateEventStats(ctx context.Context, eventID string) error {
	if _, err := r.db.ExecContext(ctx, "SELECT update_event_stats($1)", eventID); err != nil {
		return fmt.Errorf("update event stats: %w", err)
	}
	return nil
}

// UpdateWebsiteStats invokes the update_website_stats stored function.
func (r *PhotoRepository) UpdateWebsiteStats(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "SELECT update_website_stats()"); err != nil {
		return fmt.Errorf("update website stats: %w", err)
	}
	return nil
}
