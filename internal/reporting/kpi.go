package reporting

import "github.com/shopspring/decimal"

// BookingRate is the share of successful bookings over decided ones:
// (booked + soft-booked) / (booked + soft-booked + cancelled) * 100.
// The legacy source applied the division to only one term of the sum; the
// corrected formula is implemented here deliberately (see DESIGN.md).
func BookingRate(booked, softBooked, cancelled int) decimal.Decimal {
	denom := booked + softBooked + cancelled
	if denom == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(booked + softBooked)).
		Div(decimal.NewFromInt(int64(denom))).
		Mul(decimal.NewFromInt(100))
}

// ConversionRate relates handled non-wrong calls to bookings:
// (handled - wrong) / bookings * 100. A bookings count of zero is
// substituted with 1, so the degenerate result is handled - wrong rather
// than a division error; callers depend on that fallback.
func ConversionRate(handled, wrong, bookings int) decimal.Decimal {
	if bookings == 0 {
		bookings = 1
	}
	return decimal.NewFromInt(int64(handled - wrong)).
		Div(decimal.NewFromInt(int64(bookings))).
		Mul(decimal.NewFromInt(100))
}
