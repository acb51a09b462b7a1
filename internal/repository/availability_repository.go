package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
)

// AvailabilityRepository persists weekly recurring availability slots.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs an availability repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListByPhotographer returns slots ordered by day and start time.
func (r *AvailabilityRepository) ListByPhotographer(ctx context.Context, photographerID string) ([]models.AvailabilitySlot, error) {
	const query = `SELECT id, photographer_id, day_of_week, start_time, end_time, service_type, is_active, created_at, updated_at
FROM availability_slots WHERE photographer_id = $1 ORDER BY day_of_week ASC, start_time ASC`
	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, photographerID); err != nil {
		return nil, fmt.Errorf("list availability slots: %w", err)
	}
	return slots, nil
}

// GetByID fetches one slot.
func (r *AvailabilityRepository) GetByID(ctx context.Context, id string) (*models.AvailabilitySlot, error) {
	const query = `SELECT id, photographer_id, day_of_week, start_time, end_time, service_type, is_active, created_at, updated_at
FROM availability_slots WHERE id = $1`
	var slot models.AvailabilitySlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts a slot.
func (r *AvailabilityRepository) Create(ctx context.Context, slot *models.AvailabilitySlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now
	const query = `INSERT INTO availability_slots (id, photographer_id, day_of_week, start_time, end_time, service_type, is_active, created_at, updated_at)
VALUES (:id, :photographer_id, :day_of_week, :start_time, :end_time, :service_type, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create availability slot: %w", err)
	}
	return nil
}

// Update replaces a slot in place by id.
func (r *AvailabilityRepository) Update(ctx context.Context, slot *models.AvailabilitySlot) error {
	slot.UpdatedAt = time.Now().UTC()
	const query = `UPDATE availability_slots SET day_of_week = :day_of_week, start_time = :start_time, end_time = :end_time,
service_type = :service_type, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("update availability slot: %w", err)
	}
	return nil
}

// SetActive toggles a slot's active flag.
func (r *AvailabilityRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE availability_slots SET is_active = $1, updated_at = $2 WHERE id = $3", active, updatedAt, id); err != nil {
		return fmt.Errorf("toggle availability slot: %w", err)
	}
	return nil
}

// Delete removes a slot.
func (r *AvailabilityRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM availability_slots WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete availability slot: %w", err)
	}
	return nil
}
