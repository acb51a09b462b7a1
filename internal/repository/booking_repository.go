package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
)

const bookingColumns = `id, photographer_id, customer_id, client_name, client_email, client_phone, event_date, start_time, end_time, service_type, package, price, notes, created_by, status, created_at, updated_at`

// BookingRepository persists booking calendar entries.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs a booking repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// List returns bookings matching filters with a total count.
func (r *BookingRepository) List(ctx context.Context, filter models.BookingFilter) ([]models.BookingEntry, int, error) {
	base := "FROM bookings"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.PhotographerID != "" {
		where = append(where, fmt.Sprintf("photographer_id = $%d", len(args)+1))
		args = append(args, filter.PhotographerID)
	}
	if filter.CustomerID != "" {
		where = append(where, fmt.Sprintf("customer_id = $%d", len(args)+1))
		args = append(args, filter.CustomerID)
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, string(*filter.Status))
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("event_date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("event_date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s
%s WHERE %s ORDER BY event_date ASC, start_time ASC LIMIT %d OFFSET %d`, bookingColumns, base, whereClause, size, offset)
	var entries []models.BookingEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}
	return entries, total, nil
}

// ListByDate returns all entries for one photographer on one calendar date,
// ordered by start time with all-day entries first.
func (r *BookingRepository) ListByDate(ctx context.Context, photographerID string, date time.Time) ([]models.BookingEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings
WHERE photographer_id = $1 AND event_date = $2
ORDER BY start_time = 'all-day' DESC, start_time ASC`, bookingColumns)
	var entries []models.BookingEntry
	if err := r.db.SelectContext(ctx, &entries, query, photographerID, date); err != nil {
		return nil, fmt.Errorf("list bookings by date: %w", err)
	}
	return entries, nil
}

// ListByDateRange returns entries for one photographer between two dates inclusive.
func (r *BookingRepository) ListByDateRange(ctx context.Context, photographerID string, from, to time.Time) ([]models.BookingEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings
WHERE photographer_id = $1 AND event_date >= $2 AND event_date <= $3
ORDER BY event_date ASC, start_time ASC`, bookingColumns)
	var entries []models.BookingEntry
	if err := r.db.SelectContext(ctx, &entries, query, photographerID, from, to); err != nil {
		return nil, fmt.Errorf("list bookings by date range: %w", err)
	}
	return entries, nil
}

// GetByID fetches a booking entry.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.BookingEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE id = $1", bookingColumns)
	var entry models.BookingEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts a booking entry.
func (r *BookingRepository) Create(ctx context.Context, entry *models.BookingEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	query := `INSERT INTO bookings (id, photographer_id, customer_id, client_name, client_email, client_phone, event_date, start_time, end_time, service_type, package, price, notes, created_by, status, created_at, updated_at)
VALUES (:id, :photographer_id, :customer_id, :client_name, :client_email, :client_phone, :event_date, :start_time, :end_time, :service_type, :package, :price, :notes, :created_by, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// Update modifies a booking entry.
func (r *BookingRepository) Update(ctx context.Context, entry *models.BookingEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	query := `UPDATE bookings SET client_name = :client_name, client_email = :client_email, client_phone = :client_phone,
event_date = :event_date, start_time = :start_time, end_time = :end_time, service_type = :service_type,
package = :package, price = :price, notes = :notes, status = :status, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// UpdateStatus transitions an entry's status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, updatedAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3", string(status), updatedAt, id); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}

// Delete removes a booking entry.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}
