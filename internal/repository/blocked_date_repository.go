package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
)

// BlockedDateRepository persists blocked dates together with their mirrored
// calendar entries. Both rows always move inside one transaction so the two
// representations cannot drift apart.
type BlockedDateRepository struct {
	db *sqlx.DB
}

// NewBlockedDateRepository constructs a blocked-date repository.
func NewBlockedDateRepository(db *sqlx.DB) *BlockedDateRepository {
	return &BlockedDateRepository{db: db}
}

// ListByPhotographer returns blocked dates ordered by date.
func (r *BlockedDateRepository) ListByPhotographer(ctx context.Context, photographerID string) ([]models.BlockedDate, error) {
	const query = `SELECT id, photographer_id, date, reason, mirror_entry_id, created_at
FROM blocked_dates WHERE photographer_id = $1 ORDER BY date ASC`
	var dates []models.BlockedDate
	if err := r.db.SelectContext(ctx, &dates, query, photographerID); err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	return dates, nil
}

// GetByID fetches a blocked date.
func (r *BlockedDateRepository) GetByID(ctx context.Context, id string) (*models.BlockedDate, error) {
	const query = `SELECT id, photographer_id, date, reason, mirror_entry_id, created_at
FROM blocked_dates WHERE id = $1`
	var blocked models.BlockedDate
	if err := r.db.GetContext(ctx, &blocked, query, id); err != nil {
		return nil, err
	}
	return &blocked, nil
}

// CreateWithMirror inserts the blocked date and its mirrored booking entry in
// a single transaction.
func (r *BlockedDateRepository) CreateWithMirror(ctx context.Context, blocked *models.BlockedDate, mirror *models.BookingEntry) error {
	if blocked.ID == "" {
		blocked.ID = uuid.NewString()
	}
	if mirror.ID == "" {
		mirror.ID = uuid.NewString()
	}
	blocked.MirrorEntryID = mirror.ID
	now := time.Now().UTC()
	if blocked.CreatedAt.IsZero() {
		blocked.CreatedAt = now
	}
	if mirror.CreatedAt.IsZero() {
		mirror.CreatedAt = now
	}
	mirror.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin block date tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const mirrorQuery = `INSERT INTO bookings (id, photographer_id, customer_id, client_name, client_email, client_phone, event_date, start_time, end_time, service_type, package, price, notes, created_by, status, created_at, updated_at)
VALUES (:id, :photographer_id, :customer_id, :client_name, :client_email, :client_phone, :event_date, :start_time, :end_time, :service_type, :package, :price, :notes, :created_by, :status, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, mirrorQuery, mirror); err != nil {
		return fmt.Errorf("create mirror entry: %w", err)
	}

	const blockedQuery = `INSERT INTO blocked_dates (id, photographer_id, date, reason, mirror_entry_id, created_at)
VALUES (:id, :photographer_id, :date, :reason, :mirror_entry_id, :created_at)`
	if _, err := tx.NamedExecContext(ctx, blockedQuery, blocked); err != nil {
		return fmt.Errorf("create blocked date: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit block date tx: %w", err)
	}
	return nil
}

// DeleteWithMirror removes the blocked date and its mirrored entry in a
// single transaction.
func (r *BlockedDateRepository) DeleteWithMirror(ctx context.Context, blocked *models.BlockedDate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin unblock tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM blocked_dates WHERE id = $1", blocked.ID); err != nil {
		return fmt.Errorf("delete blocked date: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id = $1 AND status = $2", blocked.MirrorEntryID, string(models.BookingBlocked)); err != nil {
		return fmt.Errorf("delete mirror entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit unblock tx: %w", err)
	}
	return nil
}
