package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/calendar"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
	appErrors "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/errors"
)

type mockBookingRepo struct {
	entries map[string]models.BookingEntry
	deleted []string
	nextID  int
}

func (m *mockBookingRepo) List(ctx context.Context, filter models.BookingFilter) ([]models.BookingEntry, int, error) {
	var result []models.BookingEntry
	for _, e := range m.entries {
		if filter.PhotographerID != "" && filter.PhotographerID != e.PhotographerID {
			continue
		}
		if filter.Status != nil && *filter.Status != e.Status {
			continue
		}
		result = append(result, e)
	}
	return result, len(result), nil
}

func (m *mockBookingRepo) ListByDate(ctx context.Context, photographerID string, date time.Time) ([]models.BookingEntry, error) {
	var result []models.BookingEntry
	for _, e := range m.entries {
		if e.PhotographerID == photographerID && e.EventDate.Equal(date) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.BookingEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (m *mockBookingRepo) Create(ctx context.Context, entry *models.BookingEntry) error {
	if m.entries == nil {
		m.entries = make(map[string]models.BookingEntry)
	}
	if entry.ID == "" {
		m.nextID++
		entry.ID = string(rune('a' + m.nextID))
	}
	m.entries[entry.ID] = *entry
	return nil
}

func (m *mockBookingRepo) Update(ctx context.Context, entry *models.BookingEntry) error {
	if _, ok := m.entries[entry.ID]; !ok {
		return sql.ErrNoRows
	}
	m.entries[entry.ID] = *entry
	return nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, updatedAt time.Time) error {
	e, ok := m.entries[id]
	if !ok {
		return sql.ErrNoRows
	}
	e.Status = status
	e.UpdatedAt = updatedAt
	m.entries[id] = e
	return nil
}

func (m *mockBookingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.entries[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.entries, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func seedEntry(repo *mockBookingRepo, id string, status models.BookingStatus, creator models.BookingCreator) {
	if repo.entries == nil {
		repo.entries = make(map[string]models.BookingEntry)
	}
	repo.entries[id] = models.BookingEntry{
		ID:             id,
		PhotographerID: "ph-1",
		ClientName:     "Rina",
		EventDate:      time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		EndTime:        "11:00",
		ServiceType:    "wedding",
		CreatedBy:      creator,
		Status:         status,
	}
}

func baseCreateRequest() CreateBookingRequest {
	return CreateBookingRequest{
		PhotographerID: "ph-1",
		ClientName:     "Rina",
		ClientEmail:    "rina@example.com",
		EventDate:      time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		EndTime:        "11:00",
		ServiceType:    "wedding",
		CreatedBy:      "photographer",
	}
}

func TestCreateBookingUserAlwaysStartsPending(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewBookingService(repo, nil, nil, nil, false)

	req := baseCreateRequest()
	req.CreatedBy = "user"
	req.Status = ""

	view, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, view.Status)
	assert.Equal(t, models.ColorYellow, view.Color)
}

func TestCreateBookingUserCannotPickStatus(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewBookingService(repo, nil, nil, nil, false)

	req := baseCreateRequest()
	req.CreatedBy = "user"
	req.Status = "confirmed"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateBookingPhotographerDefaultsConfirmed(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewBookingService(repo, nil, nil, nil, false)

	view, err := svc.Create(context.Background(), baseCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, view.Status)
	assert.Equal(t, models.ColorBlue, view.Color)
}

func TestCreateBookingRefusesBlockedStatus(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewBookingService(repo, nil, nil, nil, false)

	req := baseCreateRequest()
	req.Status = "blocked"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestCreateBookingRejectsInvertedTimes(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewBookingService(repo, nil, nil, nil, false)

	req := baseCreateRequest()
	req.StartTime = "14:00"
	req.EndTime = "12:00"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateBookingAllDayNormalizesEndTime(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewBookingService(repo, nil, nil, nil, false)

	req := baseCreateRequest()
	req.StartTime = calendar.AllDay
	req.EndTime = ""

	view, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, calendar.AllDay, view.EndTime)
}

func TestCreateBookingConflictCheck(t *testing.T) {
	repo := &mockBookingRepo{}
	seedEntry(repo, "existing", models.BookingConfirmed, models.CreatedByPhotographer)

	req := baseCreateRequest()
	req.StartTime = "10:30"
	req.EndTime = "11:30"

	// Disabled: double booking goes through.
	relaxed := NewBookingService(repo, nil, nil, nil, false)
	_, err := relaxed.Create(context.Background(), req)
	require.NoError(t, err)

	// Enabled: the overlap is refused.
	strict := NewBookingService(&mockBookingRepo{entries: map[string]models.BookingEntry{"existing": repo.entries["existing"]}}, nil, nil, nil, true)
	_, err = strict.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSlotTaken.Code, appErrors.FromError(err).Code)
}

func TestCreateBookingConflictIgnoresDroppedEntries(t *testing.T) {
	repo := &mockBookingRepo{}
	seedEntry(repo, "old", models.BookingDropped, models.CreatedByPhotographer)
	svc := NewBookingService(repo, nil, nil, nil, true)

	_, err := svc.Create(context.Background(), baseCreateRequest())
	require.NoError(t, err)
}

func TestApproveOnlyUserPending(t *testing.T) {
	repo := &mockBookingRepo{}
	seedEntry(repo, "b1", models.BookingPending, models.CreatedByUser)
	seedEntry(repo, "b2", models.BookingConfirmed, models.CreatedByUser)
	seedEntry(repo, "b3", models.BookingPending, models.CreatedByPhotographer)
	svc := NewBookingService(repo, nil, nil, nil, false)

	view, err := svc.Approve(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, view.Status)

	_, err = svc.Approve(context.Background(), "b2")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)

	_, err = svc.Approve(context.Background(), "b3")
	require.Error(t, err)
}

func TestRejectRetainsEntry(t *testing.T) {
	repo := &mockBookingRepo{}
	seedEntry(repo, "b1", models.BookingPending, models.CreatedByUser)
	svc := NewBookingService(repo, nil, nil, nil, false)

	view, err := svc.Reject(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingRejected, view.Status)
	assert.Equal(t, models.ColorGray, view.Color)

	// The entry stays in storage for the request history.
	stored, err := repo.GetByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingRejected, stored.Status)
	assert.Empty(t, repo.deleted)
}

func TestDropRequiresConfirmed(t *testing.T) {
	repo := &mockBookingRepo{}
	seedEntry(repo, "b1", models.BookingConfirmed, models.CreatedByPhotographer)
	seedEntry(repo, "b2", models.BookingPending, models.CreatedByUser)
	svc := NewBookingService(repo, nil, nil, nil, false)

	view, err := svc.Drop(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingDropped, view.Status)
	assert.Equal(t, models.ColorRed, view.Color)

	_, err = svc.Drop(context.Background(), "b2")
	require.Error(t, err)
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	repo := &mockBookingRepo{}
	seedEntry(repo, "b1", models.BookingConfirmed, models.CreatedByPhotographer)
	seedEntry(repo, "b2", models.BookingRejected, models.CreatedByUser)
	svc := NewBookingService(repo, nil, nil, nil, false)

	view, err := svc.Complete(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, view.Status)
	assert.Equal(t, models.ColorGreen, view.Color)

	_, err = svc.Complete(context.Background(), "b2")
	require.Error(t, err)
}

func TestBlockedEntriesAreTerminal(t *testing.T) {
	repo := &mockBookingRepo{}
	seedEntry(repo, "blk", models.BookingBlocked, models.CreatedByPhotographer)
	svc := NewBookingService(repo, nil, nil, nil, false)

	_, err := svc.Approve(context.Background(), "blk")
	require.Error(t, err)
	_, err = svc.Drop(context.Background(), "blk")
	require.Error(t, err)
	_, err = svc.Complete(context.Background(), "blk")
	require.Error(t, err)

	err = svc.Delete(context.Background(), "blk")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)

	_, err = svc.Update(context.Background(), "blk", UpdateBookingRequest{
		ClientName:  "x",
		EventDate:   time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		ServiceType: "wedding",
	})
	require.Error(t, err)
}

func TestDeleteBooking(t *testing.T) {
	repo := &mockBookingRepo{}
	seedEntry(repo, "b1", models.BookingConfirmed, models.CreatedByPhotographer)
	svc := NewBookingService(repo, nil, nil, nil, false)

	require.NoError(t, svc.Delete(context.Background(), "b1"))
	assert.Equal(t, []string{"b1"}, repo.deleted)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestListDerivesColors(t *testing.T) {
	repo := &mockBookingRepo{}
	seedEntry(repo, "b1", models.BookingPending, models.CreatedByUser)
	svc := NewBookingService(repo, nil, nil, nil, false)

	views, pagination, err := svc.List(context.Background(), models.BookingFilter{PhotographerID: "ph-1"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.ColorYellow, views[0].Color)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestApprovedRequestMatchesDirectConfirmed(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewBookingService(repo, nil, nil, nil, false)

	userReq := baseCreateRequest()
	userReq.CreatedBy = "user"
	requested, err := svc.Create(context.Background(), userReq)
	require.NoError(t, err)
	approved, err := svc.Approve(context.Background(), requested.ID)
	require.NoError(t, err)

	directReq := baseCreateRequest()
	directReq.StartTime = "14:00"
	directReq.EndTime = "15:00"
	directReq.Status = "confirmed"
	direct, err := svc.Create(context.Background(), directReq)
	require.NoError(t, err)

	assert.Equal(t, direct.Status, approved.Status)
	assert.Equal(t, direct.Color, approved.Color)
	assert.Equal(t, models.ColorBlue, approved.Color)
}
