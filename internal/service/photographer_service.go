package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
	appErrors "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/errors"
)

type photographerRepository interface {
	List(ctx context.Context, filter models.PhotographerFilter) ([]models.Photographer, int, error)
	GetByID(ctx context.Context, id string) (*models.Photographer, error)
	Create(ctx context.Context, photographer *models.Photographer) error
	Update(ctx context.Context, photographer *models.Photographer) error
	AddFavorite(ctx context.Context, userID, photographerID string) error
	RemoveFavorite(ctx context.Context, userID, photographerID string) error
	ListFavorites(ctx context.Context, userID string) ([]models.Photographer, error)
}

// PhotographerService manages the marketplace directory and user favorites.
type PhotographerService struct {
	repo      photographerRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPhotographerService constructs the service.
func NewPhotographerService(repo photographerRepository, validate *validator.Validate, logger *zap.Logger) *PhotographerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhotographerService{repo: repo, validator: validate, logger: logger}
}

// PhotographerRequest is the profile payload for create and update.
type PhotographerRequest struct {
	UserID     string  `json:"user_id" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Specialty  string  `json:"specialty"`
	Location   string  `json:"location"`
	Bio        string  `json:"bio"`
	HourlyRate float64 `json:"hourly_rate" validate:"min=0"`
}

// List returns photographers matching the filter with pagination metadata.
func (s *PhotographerService) List(ctx context.Context, filter models.PhotographerFilter) ([]models.Photographer, *models.Pagination, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list photographers")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one photographer profile.
func (s *PhotographerService) Get(ctx context.Context, id string) (*models.Photographer, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "photographer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load photographer")
	}
	return p, nil
}

// Create registers a new photographer profile.
func (s *PhotographerService) Create(ctx context.Context, req PhotographerRequest) (*models.Photographer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid photographer payload")
	}
	p := &models.Photographer{
		UserID:     req.UserID,
		Name:       req.Name,
		Specialty:  req.Specialty,
		Location:   req.Location,
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
		Active:     true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create photographer")
	}
	return p, nil
}

// Update replaces the mutable profile fields.
func (s *PhotographerService) Update(ctx context.Context, id string, req PhotographerRequest) (*models.Photographer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid photographer payload")
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Specialty = req.Specialty
	p.Location = req.Location
	p.Bio = req.Bio
	p.HourlyRate = req.HourlyRate
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update photographer")
	}
	return p, nil
}

// AddFavorite saves a photographer to the user's favorites. Re-adding an
// existing favorite is a no-op.
func (s *PhotographerService) AddFavorite(ctx context.Context, userID, photographerID string) error {
	if _, err := s.Get(ctx, photographerID); err != nil {
		return err
	}
	if err := s.repo.AddFavorite(ctx, userID, photographerID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add favorite")
	}
	return nil
}

// RemoveFavorite deletes a favorite link.
func (s *PhotographerService) RemoveFavorite(ctx context.Context, userID, photographerID string) error {
	if err := s.repo.RemoveFavorite(ctx, userID, photographerID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove favorite")
	}
	return nil
}

// ListFavorites returns the user's saved photographers.
func (s *PhotographerService) ListFavorites(ctx context.Context, userID string) ([]models.Photographer, error) {
	items, err := s.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list favorites")
	}
	return items, nil
}
