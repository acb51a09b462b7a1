package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
)

func rentalRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "customer_id", "equipment_name", "start_date", "end_date",
		"daily_rate", "total_price", "status", "notes", "created_at", "updated_at",
	})
}

func TestRentalRepositoryListByStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRentalRepository(db)

	start := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	rows := rentalRows().
		AddRow("r-1", "u-9", "Canon R5", start, start.AddDate(0, 0, 2),
			50.0, 150.0, "active", "", time.Now(), time.Now())

	status := models.RentalActive
	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND status = $1")).
		WithArgs("active").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM rentals")).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rentals, total, err := repo.List(context.Background(), models.RentalFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, rentals, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, models.RentalActive, rentals[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRentalRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rentals")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rental := &models.Rental{
		CustomerID:    "u-9",
		EquipmentName: "Canon R5",
		StartDate:     time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC),
		DailyRate:     50,
		TotalPrice:    150,
		Status:        models.RentalRequested,
	}
	require.NoError(t, repo.Create(context.Background(), rental))
	assert.NotEmpty(t, rental.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRentalRepository(db)

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE rentals SET status = $1")).
		WithArgs("returned", now, "r-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "r-1", models.RentalReturned, now))
	assert.NoError(t, mock.ExpectationsWereMet())
}
