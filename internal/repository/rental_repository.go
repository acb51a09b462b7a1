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

const rentalColumns = `id, customer_id, equipment_name, start_date, end_date, daily_rate, total_price, status, notes, created_at, updated_at`

// RentalRepository persists equipment rental orders.
type RentalRepository struct {
	db *sqlx.DB
}

// NewRentalRepository constructs a rental repository.
func NewRentalRepository(db *sqlx.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

// List returns rentals matching filters.
func (r *RentalRepository) List(ctx context.Context, filter models.RentalFilter) ([]models.Rental, int, error) {
	base := "FROM rentals"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.CustomerID != "" {
		where = append(where, fmt.Sprintf("customer_id = $%d", len(args)+1))
		args = append(args, filter.CustomerID)
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, string(*filter.Status))
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY start_date DESC LIMIT %d OFFSET %d",
		rentalColumns, base, whereClause, size, offset)
	var rentals []models.Rental
	if err := r.db.SelectContext(ctx, &rentals, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list rentals: %w", err)
	}
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count rentals: %w", err)
	}
	return rentals, total, nil
}

// GetByID fetches a rental order.
func (r *RentalRepository) GetByID(ctx context.Context, id string) (*models.Rental, error) {
	query := fmt.Sprintf("SELECT %s FROM rentals WHERE id = $1", rentalColumns)
	var rental models.Rental
	if err := r.db.GetContext(ctx, &rental, query, id); err != nil {
		return nil, err
	}
	return &rental, nil
}

// Create inserts a rental order.
func (r *RentalRepository) Create(ctx context.Context, rental *models.Rental) error {
	if rental.ID == "" {
		rental.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rental.CreatedAt.IsZero() {
		rental.CreatedAt = now
	}
	rental.UpdatedAt = now
	const query = `INSERT INTO rentals (id, customer_id, equipment_name, start_date, end_date, daily_rate, total_price, status, notes, created_at, updated_at)
VALUES (:id, :customer_id, :equipment_name, :start_date, :end_date, :daily_rate, :total_price, :status, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rental); err != nil {
		return fmt.Errorf("create rental: %w", err)
	}
	return nil
}

// UpdateStatus transitions a rental order's status.
func (r *RentalRepository) UpdateStatus(ctx context.Context, id string, status models.RentalStatus, updatedAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE rentals SET status = $1, updated_at = $2 WHERE id = $3", string(status), updatedAt, id); err != nil {
		return fmt.Errorf("update rental status: %w", err)
	}
	return nil
}
