package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/calendar"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
	appErrors "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/errors"
)

type rentalRepository interface {
	List(ctx context.Context, filter models.RentalFilter) ([]models.Rental, int, error)
	GetByID(ctx context.Context, id string) (*models.Rental, error)
	Create(ctx context.Context, rental *models.Rental) error
	UpdateStatus(ctx context.Context, id string, status models.RentalStatus, updatedAt time.Time) error
}

// rentalTransitions lists the allowed status moves for a rental order.
var rentalTransitions = map[models.RentalStatus][]models.RentalStatus{
	models.RentalRequested: {models.RentalActive, models.RentalCancelled},
	models.RentalActive:    {models.RentalReturned},
}

// RentalService manages equipment rental orders.
type RentalService struct {
	repo      rentalRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRentalService constructs the service.
func NewRentalService(repo rentalRepository, validate *validator.Validate, logger *zap.Logger) *RentalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RentalService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// CreateRentalRequest is the rental order payload.
type CreateRentalRequest struct {
	CustomerID    string    `json:"customer_id" validate:"required"`
	EquipmentName string    `json:"equipment_name" validate:"required"`
	StartDate     time.Time `json:"start_date" validate:"required"`
	EndDate       time.Time `json:"end_date" validate:"required"`
	DailyRate     float64   `json:"daily_rate" validate:"gt=0"`
	Notes         string    `json:"notes"`
}

// List returns rentals matching the filter with pagination metadata.
func (s *RentalService) List(ctx context.Context, filter models.RentalFilter) ([]models.Rental, *models.Pagination, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rentals")
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

// Get returns one rental order.
func (s *RentalService) Get(ctx context.Context, id string) (*models.Rental, error) {
	rental, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "rental not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rental")
	}
	return rental, nil
}

// Create opens a rental order in the requested state. The total price is
// computed here from the period and daily rate, inclusive of both end days.
func (s *RentalService) Create(ctx context.Context, req CreateRentalRequest) (*models.Rental, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rental payload")
	}
	start := calendar.Truncate(req.StartDate)
	end := calendar.Truncate(req.EndDate)
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must not precede start_date")
	}
	if calendar.IsPastDate(s.now(), start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must not be in the past")
	}

	days := int(end.Sub(start).Hours()/24) + 1
	rental := &models.Rental{
		CustomerID:    req.CustomerID,
		EquipmentName: req.EquipmentName,
		StartDate:     start,
		EndDate:       end,
		DailyRate:     req.DailyRate,
		TotalPrice:    float64(days) * req.DailyRate,
		Status:        models.RentalRequested,
		Notes:         req.Notes,
	}
	if err := s.repo.Create(ctx, rental); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create rental")
	}
	return rental, nil
}

// Activate hands the equipment over.
func (s *RentalService) Activate(ctx context.Context, id string) (*models.Rental, error) {
	return s.transition(ctx, id, models.RentalActive)
}

// Return closes the rental after the equipment comes back.
func (s *RentalService) Return(ctx context.Context, id string) (*models.Rental, error) {
	return s.transition(ctx, id, models.RentalReturned)
}

// Cancel aborts a requested rental.
func (s *RentalService) Cancel(ctx context.Context, id string) (*models.Rental, error) {
	return s.transition(ctx, id, models.RentalCancelled)
}

func (s *RentalService) transition(ctx context.Context, id string, to models.RentalStatus) (*models.Rental, error) {
	rental, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, next := range rentalTransitions[rental.Status] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "rental cannot move from "+string(rental.Status)+" to "+string(to))
	}
	now := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, to, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update rental status")
	}
	rental.Status = to
	rental.UpdatedAt = now
	return rental, nil
}
