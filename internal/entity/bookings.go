package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking status codes form a closed set coming from the booking system
// export. SB is a provisional (soft) booking pending confirmation.
const (
	BookingStatusBooked     = "OK"
	BookingStatusCancelled  = "XX"
	BookingStatusPending    = "PE"
	BookingStatusOption     = "OP"
	BookingStatusRequest    = "RQ"
	BookingStatusSoftBooked = "SB"
)

type Booking struct {
	Id                  int             `db:"id"`
	BookingNumber       string          `db:"booking_number"`
	Customer            string          `db:"customer"`
	Status              string          `db:"status"`
	ServiceCreationTime time.Time       `db:"service_creation_time"`
	Price               decimal.Decimal `db:"price"`
	AgencyPrice         decimal.Decimal `db:"agency_price"`
}

// BookingStatusCounts holds status occurrences over a window.
type BookingStatusCounts struct {
	Booked     int `db:"booked"`
	SoftBooked int `db:"soft_booked"`
	Cancelled  int `db:"cancelled"`
	Pending    int `db:"pending"`
	Option     int `db:"option_taken"`
	Requested  int `db:"requested"`
	Total      int `db:"total"`
}

type BookingOverview struct {
	Counts      BookingStatusCounts
	BookingRate decimal.Decimal
	TotalPrice  decimal.Decimal
}

type BookingDay struct {
	Date       time.Time `db:"d"`
	Booked     int       `db:"booked"`
	SoftBooked int       `db:"soft_booked"`
	Cancelled  int       `db:"cancelled"`
	Total      int       `db:"total"`
}
