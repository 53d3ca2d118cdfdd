package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/entity"
	"github.com/travelops/contact-insights/internal/reporting"
)

type bookingsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Bookings() dependency.Bookings {
	return &bookingsStore{MYSQLStore: ms}
}

// StatusCounts counts status occurrences over the window. Booking rows are
// filtered on service_creation_time, which carries time-of-day; callers pass
// a window expanded to full-day datetime bounds.
func (s *bookingsStore) StatusCounts(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.BookingStatusCounts, error) {
	params := map[string]any{
		"booked":    entity.BookingStatusBooked,
		"soft":      entity.BookingStatusSoftBooked,
		"cancelled": entity.BookingStatusCancelled,
		"pending":   entity.BookingStatusPending,
		"opt":       entity.BookingStatusOption,
		"requested": entity.BookingStatusRequest,
	}
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(status = :booked), 0) AS booked,
			COALESCE(SUM(status = :soft), 0) AS soft_booked,
			COALESCE(SUM(status = :cancelled), 0) AS cancelled,
			COALESCE(SUM(status = :pending), 0) AS pending,
			COALESCE(SUM(status = :opt), 0) AS option_taken,
			COALESCE(SUM(status = :requested), 0) AS requested,
			COUNT(*) AS total
		FROM booking
		WHERE 1=1%s%s`,
		windowSQL("service_creation_time", reporting.BookingWindow(w), params),
		scopeSQL("customer", sc, params))

	counts, err := QueryNamedOne[entity.BookingStatusCounts](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("booking status counts: %w", err)
	}
	return &counts, nil
}

// Overview combines status counts with the booking rate and summed prices.
func (s *bookingsStore) Overview(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.BookingOverview, error) {
	counts, err := s.StatusCounts(ctx, w, sc)
	if err != nil {
		return nil, err
	}

	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(price), 0) AS total_price
		FROM booking
		WHERE 1=1%s%s`,
		windowSQL("service_creation_time", reporting.BookingWindow(w), params),
		scopeSQL("customer", sc, params))

	r, err := QueryNamedOne[struct {
		TotalPrice decimal.Decimal `db:"total_price"`
	}](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("booking prices: %w", err)
	}

	return &entity.BookingOverview{
		Counts:      *counts,
		BookingRate: reporting.BookingRate(counts.Booked, counts.SoftBooked, counts.Cancelled).Round(2),
		TotalPrice:  r.TotalPrice,
	}, nil
}

// DailySeries returns per-day status counts keyed by the booking date.
func (s *bookingsStore) DailySeries(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.BookingDay, error) {
	params := map[string]any{
		"booked":    entity.BookingStatusBooked,
		"soft":      entity.BookingStatusSoftBooked,
		"cancelled": entity.BookingStatusCancelled,
	}
	query := fmt.Sprintf(`
		SELECT DATE(service_creation_time) AS d,
			COALESCE(SUM(status = :booked), 0) AS booked,
			COALESCE(SUM(status = :soft), 0) AS soft_booked,
			COALESCE(SUM(status = :cancelled), 0) AS cancelled,
			COUNT(*) AS total
		FROM booking
		WHERE 1=1%s%s
		GROUP BY DATE(service_creation_time)
		ORDER BY d`,
		windowSQL("service_creation_time", reporting.BookingWindow(w), params),
		scopeSQL("customer", sc, params))

	rows, err := QueryListNamed[entity.BookingDay](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("booking daily series: %w", err)
	}
	return rows, nil
}
