package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/service"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/response"
)

type scheduleRepoStub struct {
	entries []models.BookingEntry
}

func (s *scheduleRepoStub) ListByDate(ctx context.Context, photographerID string, date time.Time) ([]models.BookingEntry, error) {
	out := []models.BookingEntry{}
	for _, e := range s.entries {
		if e.EventDate.Equal(date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *scheduleRepoStub) ListByDateRange(ctx context.Context, photographerID string, from, to time.Time) ([]models.BookingEntry, error) {
	out := []models.BookingEntry{}
	for _, e := range s.entries {
		if !e.EventDate.Before(from) && !e.EventDate.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *scheduleRepoStub) List(ctx context.Context, filter models.BookingFilter) ([]models.BookingEntry, int, error) {
	return s.entries, len(s.entries), nil
}

func TestScheduleHandlerMonth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &scheduleRepoStub{entries: []models.BookingEntry{{
		ID:             "b-1",
		PhotographerID: "ph-1",
		EventDate:      time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		EndTime:        "12:00",
		ServiceType:    "wedding",
		Status:         models.BookingConfirmed,
	}}}
	handler := NewScheduleHandler(service.NewScheduleService(repo, nil, 0, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/photographers/ph-1/schedule/month?date=2026-09-10", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "ph-1"}}

	handler.Month(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
}

func TestScheduleHandlerMonthRejectsBadDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(service.NewScheduleService(&scheduleRepoStub{}, nil, 0, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/photographers/ph-1/schedule/month?date=oops", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "ph-1"}}

	handler.Month(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerTabsExcludesBlocked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &scheduleRepoStub{entries: []models.BookingEntry{
		{
			ID:          "b-1",
			EventDate:   time.Now().UTC().AddDate(0, 0, 7),
			StartTime:   "10:00",
			EndTime:     "12:00",
			ServiceType: "wedding",
			Status:      models.BookingConfirmed,
		},
		{
			ID:          "b-2",
			EventDate:   time.Now().UTC().AddDate(0, 0, 7),
			StartTime:   "all-day",
			EndTime:     "all-day",
			ServiceType: models.ServiceTypeBlocked,
			Status:      models.BookingBlocked,
		},
	}}
	handler := NewScheduleHandler(service.NewScheduleService(repo, nil, 0, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/photographers/ph-1/schedule/tabs", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "ph-1"}}

	handler.Tabs(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data service.BookingTabs `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Upcoming, 1)
	assert.Equal(t, "b-1", envelope.Data.Upcoming[0].ID)
	assert.Empty(t, envelope.Data.Past)
}
