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

const photographerColumns = `id, user_id, name, specialty, location, bio, hourly_rate, rating, active, created_at, updated_at`

// PhotographerRepository persists photographer profiles and favorites.
type PhotographerRepository struct {
	db *sqlx.DB
}

// NewPhotographerRepository constructs a photographer repository.
func NewPhotographerRepository(db *sqlx.DB) *PhotographerRepository {
	return &PhotographerRepository{db: db}
}

// List returns active photographer profiles matching filters.
func (r *PhotographerRepository) List(ctx context.Context, filter models.PhotographerFilter) ([]models.Photographer, int, error) {
	base := "FROM photographers"
	where := []string{"active = TRUE"}
	args := []interface{}{}
	if filter.Specialty != "" {
		where = append(where, fmt.Sprintf("specialty = $%d", len(args)+1))
		args = append(args, filter.Specialty)
	}
	if filter.Location != "" {
		where = append(where, fmt.Sprintf("location = $%d", len(args)+1))
		args = append(args, filter.Location)
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR bio ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
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

	query := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY rating DESC, name ASC LIMIT %d OFFSET %d",
		photographerColumns, base, whereClause, size, offset)
	var photographers []models.Photographer
	if err := r.db.SelectContext(ctx, &photographers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list photographers: %w", err)
	}
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count photographers: %w", err)
	}
	return photographers, total, nil
}

// GetByID fetches a photographer profile.
func (r *PhotographerRepository) GetByID(ctx context.Context, id string) (*models.Photographer, error) {
	query := fmt.Sprintf("SELECT %s FROM photographers WHERE id = $1", photographerColumns)
	var photographer models.Photographer
	if err := r.db.GetContext(ctx, &photographer, query, id); err != nil {
		return nil, err
	}
	return &photographer, nil
}

// Create inserts a photographer profile.
func (r *PhotographerRepository) Create(ctx context.Context, photographer *models.Photographer) error {
	if photographer.ID == "" {
		photographer.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if photographer.CreatedAt.IsZero() {
		photographer.CreatedAt = now
	}
	photographer.UpdatedAt = now
	const query = `INSERT INTO photographers (id, user_id, name, specialty, location, bio, hourly_rate, rating, active, created_at, updated_at)
VALUES (:id, :user_id, :name, :specialty, :location, :bio, :hourly_rate, :rating, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, photographer); err != nil {
		return fmt.Errorf("create photographer: %w", err)
	}
	return nil
}

// Update modifies a photographer profile.
func (r *PhotographerRepository) Update(ctx context.Context, photographer *models.Photographer) error {
	photographer.UpdatedAt = time.Now().UTC()
	const query = `UPDATE photographers SET name = :name, specialty = :specialty, location = :location, bio = :bio,
hourly_rate = :hourly_rate, rating = :rating, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, photographer); err != nil {
		return fmt.Errorf("update photographer: %w", err)
	}
	return nil
}

// AddFavorite saves a photographer for a user. Re-adding is a no-op.
func (r *PhotographerRepository) AddFavorite(ctx context.Context, userID, photographerID string) error {
	const query = `INSERT INTO user_favorites (user_id, photographer_id, created_at)
VALUES ($1, $2, $3) ON CONFLICT (user_id, photographer_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, userID, photographerID, time.Now().UTC()); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite deletes a saved photographer for a user.
func (r *PhotographerRepository) RemoveFavorite(ctx context.Context, userID, photographerID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM user_favorites WHERE user_id = $1 AND photographer_id = $2", userID, photographerID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// ListFavorites returns the photographers a user has saved.
func (r *PhotographerRepository) ListFavorites(ctx context.Context, userID string) ([]models.Photographer, error) {
	query := fmt.Sprintf(`SELECT p.%s FROM photographers p
JOIN user_favorites f ON f.photographer_id = p.id
WHERE f.user_id = $1 ORDER BY f.created_at DESC`,
		strings.ReplaceAll(photographerColumns, ", ", ", p."))
	var photographers []models.Photographer
	if err := r.db.SelectContext(ctx, &photographers, query, userID); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return photographers, nil
}
