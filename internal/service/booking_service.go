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

type bookingRepository interface {
	List(ctx context.Context, filter models.BookingFilter) ([]models.BookingEntry, int, error)
	ListByDate(ctx context.Context, photographerID string, date time.Time) ([]models.BookingEntry, error)
	GetByID(ctx context.Context, id string) (*models.BookingEntry, error)
	Create(ctx context.Context, entry *models.BookingEntry) error
	Update(ctx context.Context, entry *models.BookingEntry) error
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// BookingService owns the booking lifecycle. Every status transition in the
// system goes through Approve, Reject or Drop so the transition rules live in
// one place instead of scattered handlers.
type BookingService struct {
	repo          bookingRepository
	cache         *CacheService
	validator     *validator.Validate
	logger        *zap.Logger
	conflictCheck bool
	now           func() time.Time
}

// NewBookingService constructs the service.
func NewBookingService(repo bookingRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, conflictCheck bool) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		repo:          repo,
		cache:         cache,
		validator:     validate,
		logger:        logger,
		conflictCheck: conflictCheck,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CreateBookingRequest describes a booking create payload.
type CreateBookingRequest struct {
	PhotographerID string    `json:"photographer_id" validate:"required"`
	CustomerID     *string   `json:"customer_id"`
	ClientName     string    `json:"client_name" validate:"required"`
	ClientEmail    string    `json:"client_email" validate:"omitempty,email"`
	ClientPhone    string    `json:"client_phone"`
	EventDate      time.Time `json:"event_date" validate:"required"`
	StartTime      string    `json:"start_time" validate:"required"`
	EndTime        string    `json:"end_time"`
	ServiceType    string    `json:"service_type" validate:"required"`
	Package        string    `json:"package"`
	Price          float64   `json:"price" validate:"gte=0"`
	Notes          string    `json:"notes"`
	CreatedBy      string    `json:"created_by" validate:"required,oneof=photographer user"`
	Status         string    `json:"status"`
}

// UpdateBookingRequest describes an update payload for descriptive fields.
// Status is deliberately absent: transitions go through the quick actions.
type UpdateBookingRequest struct {
	ClientName  string    `json:"client_name" validate:"required"`
	ClientEmail string    `json:"client_email" validate:"omitempty,email"`
	ClientPhone string    `json:"client_phone"`
	EventDate   time.Time `json:"event_date" validate:"required"`
	StartTime   string    `json:"start_time" validate:"required"`
	EndTime     string    `json:"end_time"`
	ServiceType string    `json:"service_type" validate:"required"`
	Package     string    `json:"package"`
	Price       float64   `json:"price" validate:"gte=0"`
	Notes       string    `json:"notes"`
}

// List returns booking views with derived colors.
func (s *BookingService) List(ctx context.Context, filter models.BookingFilter) ([]models.BookingView, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	views := make([]models.BookingView, len(entries))
	for i, entry := range entries {
		views[i] = models.NewBookingView(entry)
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return views, pagination, nil
}

// Get returns one booking view.
func (s *BookingService) Get(ctx context.Context, id string) (*models.BookingView, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get booking")
	}
	view := models.NewBookingView(*entry)
	return &view, nil
}

// Create registers a new booking. User-created bookings always start pending;
// photographers pick the initial status explicitly. The blocked status is
// reserved for the block-date flow.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*models.BookingView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}
	if err := validateEntryTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	creator := models.BookingCreator(req.CreatedBy)
	status := models.BookingStatus(req.Status)
	switch creator {
	case models.CreatedByUser:
		if req.Status != "" && status != models.BookingPending {
			return nil, appErrors.Clone(appErrors.ErrValidation, "user bookings start as pending")
		}
		status = models.BookingPending
	case models.CreatedByPhotographer:
		if req.Status == "" {
			status = models.BookingConfirmed
		}
		switch status {
		case models.BookingPending, models.BookingConfirmed, models.BookingCompleted, models.BookingDropped:
		default:
			return nil, appErrors.Clone(appErrors.ErrValidation, "status must be one of pending, confirmed, completed, dropped")
		}
	}

	if s.conflictCheck {
		if err := s.ensureSlotFree(ctx, req.PhotographerID, req.EventDate, req.StartTime, req.EndTime); err != nil {
			return nil, err
		}
	}

	entry := &models.BookingEntry{
		PhotographerID: req.PhotographerID,
		CustomerID:     req.CustomerID,
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		EventDate:      calendar.Truncate(req.EventDate),
		StartTime:      req.StartTime,
		EndTime:        normalizeEndTime(req.StartTime, req.EndTime),
		ServiceType:    req.ServiceType,
		Package:        req.Package,
		Price:          req.Price,
		Notes:          req.Notes,
		CreatedBy:      creator,
		Status:         status,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create booking")
	}
	s.invalidateProjections(ctx, entry.PhotographerID)
	view := models.NewBookingView(*entry)
	return &view, nil
}

// Update modifies descriptive fields of an existing booking.
func (s *BookingService) Update(ctx context.Context, id string, req UpdateBookingRequest) (*models.BookingView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}
	if err := validateEntryTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}
	if entry.Status == models.BookingBlocked {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "blocked entries are managed through the block-date flow")
	}
	entry.ClientName = req.ClientName
	entry.ClientEmail = req.ClientEmail
	entry.ClientPhone = req.ClientPhone
	entry.EventDate = calendar.Truncate(req.EventDate)
	entry.StartTime = req.StartTime
	entry.EndTime = normalizeEndTime(req.StartTime, req.EndTime)
	entry.ServiceType = req.ServiceType
	entry.Package = req.Package
	entry.Price = req.Price
	entry.Notes = req.Notes
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update booking")
	}
	s.invalidateProjections(ctx, entry.PhotographerID)
	view := models.NewBookingView(*entry)
	return &view, nil
}

// Approve confirms a user-created pending booking. Any other combination is
// rejected with a precondition failure.
func (s *BookingService) Approve(ctx context.Context, id string) (*models.BookingView, error) {
	return s.transition(ctx, id, models.BookingConfirmed, func(entry *models.BookingEntry) error {
		if entry.Status != models.BookingPending || entry.CreatedBy != models.CreatedByUser {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "only user-created pending bookings can be approved")
		}
		return nil
	})
}

// Reject declines a user-created pending booking. The entry is retained with
// status rejected rather than deleted, so the booking-requests view keeps its
// history.
func (s *BookingService) Reject(ctx context.Context, id string) (*models.BookingView, error) {
	return s.transition(ctx, id, models.BookingRejected, func(entry *models.BookingEntry) error {
		if entry.Status != models.BookingPending || entry.CreatedBy != models.CreatedByUser {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "only user-created pending bookings can be rejected")
		}
		return nil
	})
}

// Drop cancels a confirmed booking.
func (s *BookingService) Drop(ctx context.Context, id string) (*models.BookingView, error) {
	return s.transition(ctx, id, models.BookingDropped, func(entry *models.BookingEntry) error {
		if entry.Status != models.BookingConfirmed {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "only confirmed bookings can be dropped")
		}
		return nil
	})
}

// Complete marks a confirmed booking as completed.
func (s *BookingService) Complete(ctx context.Context, id string) (*models.BookingView, error) {
	return s.transition(ctx, id, models.BookingCompleted, func(entry *models.BookingEntry) error {
		if entry.Status != models.BookingConfirmed {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "only confirmed bookings can be completed")
		}
		return nil
	})
}

// Delete removes a booking entry. Blocked mirrors are refused; they are
// deleted through the block-date flow so both rows go together.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}
	if entry.Status == models.BookingBlocked {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "blocked entries are deleted through the block-date flow")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete booking")
	}
	s.invalidateProjections(ctx, entry.PhotographerID)
	return nil
}

func (s *BookingService) transition(ctx context.Context, id string, to models.BookingStatus, precondition func(*models.BookingEntry) error) (*models.BookingView, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}
	if err := precondition(entry); err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, to, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update booking status")
	}
	entry.Status = to
	entry.UpdatedAt = now
	s.logger.Info("booking transition",
		zap.String("booking_id", id),
		zap.String("status", string(to)))
	s.invalidateProjections(ctx, entry.PhotographerID)
	view := models.NewBookingView(*entry)
	return &view, nil
}

func (s *BookingService) ensureSlotFree(ctx context.Context, photographerID string, date time.Time, start, end string) error {
	existing, err := s.repo.ListByDate(ctx, photographerID, calendar.Truncate(date))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slot availability")
	}
	for _, entry := range existing {
		switch entry.Status {
		case models.BookingPending, models.BookingConfirmed, models.BookingBlocked:
		default:
			continue
		}
		if calendar.Overlaps(entry.StartTime, entry.EndTime, start, end) {
			return appErrors.Clone(appErrors.ErrSlotTaken, "requested slot overlaps an existing booking")
		}
	}
	return nil
}

func (s *BookingService) invalidateProjections(ctx context.Context, photographerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, scheduleCachePattern(photographerID)); err != nil {
		s.logger.Warn("failed to invalidate schedule cache", zap.String("photographer_id", photographerID), zap.Error(err))
	}
}

func validateEntryTimes(start, end string) error {
	if start == calendar.AllDay {
		return nil
	}
	if _, _, ok := calendar.ParseClock(start); !ok {
		return appErrors.Clone(appErrors.ErrValidation, "start_time must be HH:MM or all-day")
	}
	if end == "" {
		return nil
	}
	if _, _, ok := calendar.ParseClock(end); !ok {
		return appErrors.Clone(appErrors.ErrValidation, "end_time must be HH:MM")
	}
	if end <= start {
		return appErrors.Clone(appErrors.ErrValidation, "end_time must be after start_time")
	}
	return nil
}

func normalizeEndTime(start, end string) string {
	if start == calendar.AllDay {
		return calendar.AllDay
	}
	return end
}
