package models

import "time"

// RentalStatus enumerates equipment rental order states.
type RentalStatus string

const (
	RentalRequested RentalStatus = "requested"
	RentalActive    RentalStatus = "active"
	RentalReturned  RentalStatus = "returned"
	RentalCancelled RentalStatus = "cancelled"
)

// Rental is an equipment rental order.
type Rental struct {
	ID            string       `db:"id" json:"id"`
	CustomerID    string       `db:"customer_id" json:"customer_id"`
	EquipmentName string       `db:"equipment_name" json:"equipment_name"`
	StartDate     time.Time    `db:"start_date" json:"start_date"`
	EndDate       time.Time    `db:"end_date" json:"end_date"`
	DailyRate     float64      `db:"daily_rate" json:"daily_rate"`
	TotalPrice    float64      `db:"total_price" json:"total_price"`
	Status        RentalStatus `db:"status" json:"status"`
	Notes         string       `db:"notes" json:"notes"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
}

// RentalFilter captures criteria for listing rentals.
type RentalFilter struct {
	CustomerID string
	Status     *RentalStatus
	Page       int
	PageSize   int
}
