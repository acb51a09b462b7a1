package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/service"
)

type bookingRepoStub struct {
	entries map[string]*models.BookingEntry
}

func newBookingRepoStub() *bookingRepoStub {
	return &bookingRepoStub{entries: map[string]*models.BookingEntry{}}
}

func (s *bookingRepoStub) List(ctx context.Context, filter models.BookingFilter) ([]models.BookingEntry, int, error) {
	out := []models.BookingEntry{}
	for _, e := range s.entries {
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (s *bookingRepoStub) ListByDate(ctx context.Context, photographerID string, date time.Time) ([]models.BookingEntry, error) {
	out := []models.BookingEntry{}
	for _, e := range s.entries {
		if e.PhotographerID == photographerID && e.EventDate.Equal(date) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *bookingRepoStub) GetByID(ctx context.Context, id string) (*models.BookingEntry, error) {
	entry, ok := s.entries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *entry
	return &clone, nil
}

func (s *bookingRepoStub) Create(ctx context.Context, entry *models.BookingEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	clone := *entry
	s.entries[entry.ID] = &clone
	return nil
}

func (s *bookingRepoStub) Update(ctx context.Context, entry *models.BookingEntry) error {
	clone := *entry
	s.entries[entry.ID] = &clone
	return nil
}

func (s *bookingRepoStub) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, updatedAt time.Time) error {
	s.entries[id].Status = status
	s.entries[id].UpdatedAt = updatedAt
	return nil
}

func (s *bookingRepoStub) Delete(ctx context.Context, id string) error {
	delete(s.entries, id)
	return nil
}

func newBookingTestHandler(repo *bookingRepoStub) *BookingHandler {
	svc := service.NewBookingService(repo, nil, nil, nil, false)
	return NewBookingHandler(svc, service.NewExportService(repo, nil, nil))
}

func TestBookingHandlerCreateForcesPendingForUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newBookingRepoStub()
	handler := newBookingTestHandler(repo)

	payload, _ := json.Marshal(service.CreateBookingRequest{
		PhotographerID: "ph-1",
		ClientName:     "Ana Silva",
		EventDate:      time.Date(2026, time.October, 2, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		EndTime:        "12:00",
		ServiceType:    "portrait",
		CreatedBy:      "user",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, repo.entries, 1)
	for _, entry := range repo.entries {
		assert.Equal(t, models.BookingPending, entry.Status)
	}
}

func TestBookingHandlerCreateRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newBookingTestHandler(newBookingRepoStub())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(`{"client_name":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandlerListRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newBookingTestHandler(newBookingRepoStub())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/bookings?status=bogus", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandlerListNormalizesLegacyStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newBookingTestHandler(newBookingRepoStub())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/bookings?status=cancelled", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBookingHandlerApproveMissingBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newBookingTestHandler(newBookingRepoStub())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/bookings/nope/approve", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	handler.Approve(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
