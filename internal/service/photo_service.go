package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
	appErrors "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/errors"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/storage"
)

type photoRepository interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) error
	GetPhoto(ctx context.Context, id string) (*models.EventPhoto, error)
	ListPhotosByEvent(ctx context.Context, eventID string) ([]models.EventPhoto, error)
	CreatePhoto(ctx context.Context, photo *models.EventPhoto) error
	RecordDownload(ctx context.Context, download *models.PhotoDownload) error
	UpdateEventStats(ctx context.Context, eventID string) error
}

// PhotoService manages photo delivery: events, uploads, and signed download
// links. Files live on local disk; only HMAC-signed tokens are handed out.
type PhotoService struct {
	repo      photoRepository
	store     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPhotoService constructs the service.
func NewPhotoService(repo photoRepository, store *storage.LocalStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger) *PhotoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhotoService{repo: repo, store: store, signer: signer, validator: validate, logger: logger}
}

// CreateEventRequest is the payload for opening a delivery event.
type CreateEventRequest struct {
	PhotographerID string    `json:"photographer_id" validate:"required"`
	BookingID      *string   `json:"booking_id"`
	Title          string    `json:"title" validate:"required"`
	EventDate      time.Time `json:"event_date" validate:"required"`
}

// SignedLink is an issued download token with its expiry.
type SignedLink struct {
	PhotoID   string    `json:"photo_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateEvent opens a delivery event for a shoot.
func (s *PhotoService) CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event := &models.Event{
		PhotographerID: req.PhotographerID,
		BookingID:      req.BookingID,
		Title:          req.Title,
		EventDate:      req.EventDate,
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	return event, nil
}

// GetEvent returns one delivery event.
func (s *PhotoService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	return event, nil
}

// ListPhotos returns the photos delivered under an event.
func (s *PhotoService) ListPhotos(ctx context.Context, eventID string) ([]models.EventPhoto, error) {
	photos, err := s.repo.ListPhotosByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list photos")
	}
	return photos, nil
}

// UploadPhoto streams one image to disk and records it under the event. The
// event's counters are refreshed afterwards.
func (s *PhotoService) UploadPhoto(ctx context.Context, eventID, fileName string, size int64, r io.Reader) (*models.EventPhoto, error) {
	if fileName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file name is required")
	}
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	photoID := uuid.NewString()
	relPath, err := s.store.SaveStream(eventID+"_"+photoID+"_"+fileName, r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store photo")
	}

	photo := &models.EventPhoto{
		ID:        photoID,
		EventID:   eventID,
		FilePath:  relPath,
		FileName:  fileName,
		SizeBytes: size,
	}
	if err := s.repo.CreatePhoto(ctx, photo); err != nil {
		if removeErr := s.store.Delete(relPath); removeErr != nil {
			s.logger.Warn("failed to remove orphaned photo file", zap.String("path", relPath), zap.Error(removeErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record photo")
	}

	if err := s.repo.UpdateEventStats(ctx, eventID); err != nil {
		s.logger.Warn("failed to refresh event stats", zap.String("event_id", eventID), zap.Error(err))
	}
	return photo, nil
}

// IssueDownloadLink generates a time-limited signed token for one photo.
func (s *PhotoService) IssueDownloadLink(ctx context.Context, photoID string) (*SignedLink, error) {
	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "photo not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load photo")
	}

	token, expiresAt, err := s.signer.Generate(photo.ID, photo.FilePath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}
	return &SignedLink{PhotoID: photo.ID, Token: token, ExpiresAt: expiresAt}, nil
}

// RedeemDownloadLink validates a signed token, records the download and
// returns the open file handle with its original name. The caller owns the
// handle and must close it.
func (s *PhotoService) RedeemDownloadLink(ctx context.Context, token string, userID *string) (*os.File, string, error) {
	photoID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download link")
	}

	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "photo not found")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load photo")
	}
	if photo.FilePath != relPath {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "download link does not match photo")
	}

	f, err := s.store.Open(photo.FilePath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open photo file")
	}

	if err := s.repo.RecordDownload(ctx, &models.PhotoDownload{PhotoID: photo.ID, UserID: userID}); err != nil {
		s.logger.Warn("failed to record photo download", zap.String("photo_id", photo.ID), zap.Error(err))
	}
	if err := s.repo.UpdateEventStats(ctx, photo.EventID); err != nil {
		s.logger.Warn("failed to refresh event stats", zap.String("event_id", photo.EventID), zap.Error(err))
	}
	return f, photo.FileName, nil
}
