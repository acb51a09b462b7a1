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

type mockSlotRepo struct {
	slots map[string]models.AvailabilitySlot
}

func (m *mockSlotRepo) ListByPhotographer(ctx context.Context, photographerID string) ([]models.AvailabilitySlot, error) {
	var result []models.AvailabilitySlot
	for _, s := range m.slots {
		if s.PhotographerID == photographerID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id string) (*models.AvailabilitySlot, error) {
	s, ok := m.slots[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *mockSlotRepo) Create(ctx context.Context, slot *models.AvailabilitySlot) error {
	if m.slots == nil {
		m.slots = make(map[string]models.AvailabilitySlot)
	}
	if slot.ID == "" {
		slot.ID = "slot-1"
	}
	m.slots[slot.ID] = *slot
	return nil
}

func (m *mockSlotRepo) Update(ctx context.Context, slot *models.AvailabilitySlot) error {
	if _, ok := m.slots[slot.ID]; !ok {
		return sql.ErrNoRows
	}
	m.slots[slot.ID] = *slot
	return nil
}

func (m *mockSlotRepo) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	s, ok := m.slots[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.IsActive = active
	s.UpdatedAt = updatedAt
	m.slots[id] = s
	return nil
}

func (m *mockSlotRepo) Delete(ctx context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

type mockBlockedRepo struct {
	blocked map[string]models.BlockedDate
	mirrors map[string]models.BookingEntry
}

func (m *mockBlockedRepo) ListByPhotographer(ctx context.Context, photographerID string) ([]models.BlockedDate, error) {
	var result []models.BlockedDate
	for _, b := range m.blocked {
		if b.PhotographerID == photographerID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBlockedRepo) GetByID(ctx context.Context, id string) (*models.BlockedDate, error) {
	b, ok := m.blocked[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &b, nil
}

func (m *mockBlockedRepo) CreateWithMirror(ctx context.Context, blocked *models.BlockedDate, mirror *models.BookingEntry) error {
	if m.blocked == nil {
		m.blocked = make(map[string]models.BlockedDate)
		m.mirrors = make(map[string]models.BookingEntry)
	}
	if blocked.ID == "" {
		blocked.ID = "blocked-1"
	}
	if mirror.ID == "" {
		mirror.ID = "mirror-1"
	}
	blocked.MirrorEntryID = mirror.ID
	m.blocked[blocked.ID] = *blocked
	m.mirrors[mirror.ID] = *mirror
	return nil
}

func (m *mockBlockedRepo) DeleteWithMirror(ctx context.Context, blocked *models.BlockedDate) error {
	if _, ok := m.blocked[blocked.ID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.blocked, blocked.ID)
	delete(m.mirrors, blocked.MirrorEntryID)
	return nil
}

func newAvailabilityService(slots *mockSlotRepo, blocked *mockBlockedRepo) *AvailabilityService {
	return NewAvailabilityService(slots, blocked, nil, nil, nil)
}

func TestAddSlotValidatesClockValues(t *testing.T) {
	svc := newAvailabilityService(&mockSlotRepo{}, &mockBlockedRepo{})

	_, err := svc.AddSlot(context.Background(), SlotRequest{
		PhotographerID: "ph-1",
		DayOfWeek:      1,
		StartTime:      "9am",
		EndTime:        "17:00",
		ServiceType:    "portrait",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.AddSlot(context.Background(), SlotRequest{
		PhotographerID: "ph-1",
		DayOfWeek:      1,
		StartTime:      "17:00",
		EndTime:        "09:00",
		ServiceType:    "portrait",
	})
	require.Error(t, err)

	slot, err := svc.AddSlot(context.Background(), SlotRequest{
		PhotographerID: "ph-1",
		DayOfWeek:      1,
		StartTime:      "09:00",
		EndTime:        "17:00",
		ServiceType:    "portrait",
		IsActive:       true,
	})
	require.NoError(t, err)
	assert.True(t, slot.IsActive)
}

func TestToggleSlot(t *testing.T) {
	slots := &mockSlotRepo{slots: map[string]models.AvailabilitySlot{
		"slot-1": {ID: "slot-1", PhotographerID: "ph-1", DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsActive: true},
	}}
	svc := newAvailabilityService(slots, &mockBlockedRepo{})

	slot, err := svc.ToggleSlot(context.Background(), "slot-1")
	require.NoError(t, err)
	assert.False(t, slot.IsActive)

	slot, err = svc.ToggleSlot(context.Background(), "slot-1")
	require.NoError(t, err)
	assert.True(t, slot.IsActive)

	_, err = svc.ToggleSlot(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestBlockDateCreatesMirrorEntry(t *testing.T) {
	blocked := &mockBlockedRepo{}
	svc := newAvailabilityService(&mockSlotRepo{}, blocked)

	date := time.Date(2026, time.October, 3, 15, 30, 0, 0, time.UTC)
	result, err := svc.BlockDate(context.Background(), BlockDateRequest{
		PhotographerID: "ph-1",
		Date:           date,
		Reason:         "family trip",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.MirrorEntryID)

	mirror, ok := blocked.mirrors[result.MirrorEntryID]
	require.True(t, ok)
	assert.Equal(t, "ph-1", mirror.PhotographerID)
	assert.Equal(t, calendar.AllDay, mirror.StartTime)
	assert.Equal(t, calendar.AllDay, mirror.EndTime)
	assert.Equal(t, models.ServiceTypeBlocked, mirror.ServiceType)
	assert.Equal(t, models.BookingBlocked, mirror.Status)
	assert.Equal(t, models.CreatedByPhotographer, mirror.CreatedBy)
	assert.Equal(t, "family trip", mirror.Notes)
	// The mirror lands on the truncated calendar day.
	assert.Equal(t, time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC), mirror.EventDate)
}

func TestUnblockDateRemovesMirror(t *testing.T) {
	blocked := &mockBlockedRepo{}
	svc := newAvailabilityService(&mockSlotRepo{}, blocked)

	result, err := svc.BlockDate(context.Background(), BlockDateRequest{
		PhotographerID: "ph-1",
		Date:           time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC),
		Reason:         "maintenance",
	})
	require.NoError(t, err)

	require.NoError(t, svc.UnblockDate(context.Background(), result.ID))
	assert.Empty(t, blocked.blocked)
	assert.Empty(t, blocked.mirrors)

	err = svc.UnblockDate(context.Background(), result.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
