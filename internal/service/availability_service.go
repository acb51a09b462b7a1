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

type availabilityRepository interface {
	ListByPhotographer(ctx context.Context, photographerID string) ([]models.AvailabilitySlot, error)
	GetByID(ctx context.Context, id string) (*models.AvailabilitySlot, error)
	Create(ctx context.Context, slot *models.AvailabilitySlot) error
	Update(ctx context.Context, slot *models.AvailabilitySlot) error
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type blockedDateRepository interface {
	ListByPhotographer(ctx context.Context, photographerID string) ([]models.BlockedDate, error)
	GetByID(ctx context.Context, id string) (*models.BlockedDate, error)
	CreateWithMirror(ctx context.Context, blocked *models.BlockedDate, mirror *models.BookingEntry) error
	DeleteWithMirror(ctx context.Context, blocked *models.BlockedDate) error
}

// AvailabilityService manages weekly recurring slots and blocked dates.
// Blocked dates always carry a mirrored calendar entry; the repository writes
// both rows in one transaction and this service owns the mirror's shape.
type AvailabilityService struct {
	slots     availabilityRepository
	blocked   blockedDateRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService constructs the service.
func NewAvailabilityService(slots availabilityRepository, blocked blockedDateRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{slots: slots, blocked: blocked, cache: cache, validator: validate, logger: logger}
}

// SlotRequest describes an availability slot payload for create and update.
type SlotRequest struct {
	PhotographerID string `json:"photographer_id" validate:"required"`
	DayOfWeek      int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime      string `json:"start_time" validate:"required"`
	EndTime        string `json:"end_time" validate:"required"`
	ServiceType    string `json:"service_type" validate:"required"`
	IsActive       bool   `json:"is_active"`
}

// BlockDateRequest describes a block-date payload.
type BlockDateRequest struct {
	PhotographerID string    `json:"photographer_id" validate:"required"`
	Date           time.Time `json:"date" validate:"required"`
	Reason         string    `json:"reason" validate:"required"`
}

// ListSlots returns a photographer's recurring slots.
func (s *AvailabilityService) ListSlots(ctx context.Context, photographerID string) ([]models.AvailabilitySlot, error) {
	slots, err := s.slots.ListByPhotographer(ctx, photographerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	return slots, nil
}

// AddSlot creates a recurring slot.
func (s *AvailabilityService) AddSlot(ctx context.Context, req SlotRequest) (*models.AvailabilitySlot, error) {
	if err := s.validateSlot(req); err != nil {
		return nil, err
	}
	slot := &models.AvailabilitySlot{
		PhotographerID: req.PhotographerID,
		DayOfWeek:      req.DayOfWeek,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		ServiceType:    req.ServiceType,
		IsActive:       req.IsActive,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create availability slot")
	}
	return slot, nil
}

// UpdateSlot replaces a slot in place by id.
func (s *AvailabilityService) UpdateSlot(ctx context.Context, id string, req SlotRequest) (*models.AvailabilitySlot, error) {
	if err := s.validateSlot(req); err != nil {
		return nil, err
	}
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "availability slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability slot")
	}
	slot.DayOfWeek = req.DayOfWeek
	slot.StartTime = req.StartTime
	slot.EndTime = req.EndTime
	slot.ServiceType = req.ServiceType
	slot.IsActive = req.IsActive
	if err := s.slots.Update(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update availability slot")
	}
	return slot, nil
}

// ToggleSlot flips a slot's active flag.
func (s *AvailabilityService) ToggleSlot(ctx context.Context, id string) (*models.AvailabilitySlot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "availability slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability slot")
	}
	slot.IsActive = !slot.IsActive
	slot.UpdatedAt = time.Now().UTC()
	if err := s.slots.SetActive(ctx, id, slot.IsActive, slot.UpdatedAt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle availability slot")
	}
	return slot, nil
}

// DeleteSlot removes a recurring slot.
func (s *AvailabilityService) DeleteSlot(ctx context.Context, id string) error {
	if err := s.slots.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete availability slot")
	}
	return nil
}

// ListBlockedDates returns a photographer's blocked dates.
func (s *AvailabilityService) ListBlockedDates(ctx context.Context, photographerID string) ([]models.BlockedDate, error) {
	dates, err := s.blocked.ListByPhotographer(ctx, photographerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list blocked dates")
	}
	return dates, nil
}

// BlockDate marks a date non-bookable and synthesizes the mirrored calendar
// entry so grids render it.
func (s *AvailabilityService) BlockDate(ctx context.Context, req BlockDateRequest) (*models.BlockedDate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid block-date payload")
	}
	day := calendar.Truncate(req.Date)
	blocked := &models.BlockedDate{
		PhotographerID: req.PhotographerID,
		Date:           day,
		Reason:         req.Reason,
	}
	// Blocked mirrors carry no client contact fields.
	mirror := &models.BookingEntry{
		PhotographerID: req.PhotographerID,
		EventDate:      day,
		StartTime:      calendar.AllDay,
		EndTime:        calendar.AllDay,
		ServiceType:    models.ServiceTypeBlocked,
		Notes:          req.Reason,
		CreatedBy:      models.CreatedByPhotographer,
		Status:         models.BookingBlocked,
	}
	if err := s.blocked.CreateWithMirror(ctx, blocked, mirror); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to block date")
	}
	s.invalidateProjections(ctx, req.PhotographerID)
	return blocked, nil
}

// UnblockDate removes a blocked date and its mirrored entry.
func (s *AvailabilityService) UnblockDate(ctx context.Context, id string) error {
	blocked, err := s.blocked.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "blocked date not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load blocked date")
	}
	if err := s.blocked.DeleteWithMirror(ctx, blocked); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unblock date")
	}
	s.invalidateProjections(ctx, blocked.PhotographerID)
	return nil
}

func (s *AvailabilityService) validateSlot(req SlotRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	if _, _, ok := calendar.ParseClock(req.StartTime); !ok {
		return appErrors.Clone(appErrors.ErrValidation, "start_time must be HH:MM")
	}
	if _, _, ok := calendar.ParseClock(req.EndTime); !ok {
		return appErrors.Clone(appErrors.ErrValidation, "end_time must be HH:MM")
	}
	if req.EndTime <= req.StartTime {
		return appErrors.Clone(appErrors.ErrValidation, "end_time must be after start_time")
	}
	return nil
}

func (s *AvailabilityService) invalidateProjections(ctx context.Context, photographerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, scheduleCachePattern(photographerID)); err != nil {
		s.logger.Warn("failed to invalidate schedule cache", zap.String("photographer_id", photographerID), zap.Error(err))
	}
}
