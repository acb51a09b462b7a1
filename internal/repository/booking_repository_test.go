package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "photographer_id", "customer_id", "client_name", "client_email", "client_phone",
		"event_date", "start_time", "end_time", "service_type", "package", "price", "notes",
		"created_by", "status", "created_at", "updated_at",
	})
}

func TestBookingRepositoryListByDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	day := time.Date(2025, time.September, 25, 0, 0, 0, 0, time.UTC)
	rows := bookingRows().
		AddRow("b-1", "ph-1", nil, "Ana Silva", "ana@example.com", "555-0101",
			day, "all-day", "all-day", "blocked", "", 0.0, "",
			"photographer", "blocked", time.Now(), time.Now()).
		AddRow("b-2", "ph-1", nil, "Ben Okoro", "ben@example.com", "555-0102",
			day, "10:00", "12:00", "wedding", "gold", 450.0, "",
			"user", "pending", time.Now(), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE photographer_id = $1 AND event_date = $2")).
		WithArgs("ph-1", day).
		WillReturnRows(rows)

	entries, err := repo.ListByDate(context.Background(), "ph-1", day)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b-1", entries[0].ID)
	assert.Equal(t, models.BookingBlocked, entries[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.BookingEntry{
		PhotographerID: "ph-1",
		ClientName:     "Ana Silva",
		EventDate:      time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		EndTime:        "12:00",
		ServiceType:    "portrait",
		CreatedBy:      models.CreatedByUser,
		Status:         models.BookingPending,
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID, "id assigned at creation")
	assert.False(t, entry.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs("confirmed", now, "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "b-1", models.BookingConfirmed, now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	status := models.BookingPending
	mock.ExpectQuery(regexp.QuoteMeta("photographer_id = $1 AND status = $2")).
		WithArgs("ph-1", "pending").
		WillReturnRows(bookingRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings")).
		WithArgs("ph-1", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	entries, total, err := repo.List(context.Background(), models.BookingFilter{
		PhotographerID: "ph-1",
		Status:         &status,
	})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
