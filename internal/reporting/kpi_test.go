package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingRate(t *testing.T) {
	// 10 bookings: 6 OK, 2 SB, 2 XX. The corrected formula counts the full
	// sum in the numerator: (6+2)/10*100.
	rate := BookingRate(6, 2, 2)
	assert.Equal(t, "80", rate.String())

	assert.True(t, BookingRate(0, 0, 0).IsZero())
	assert.Equal(t, "100", BookingRate(3, 1, 0).String())
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, "150", ConversionRate(40, 10, 20).String())

	// bookings of zero is substituted with 1: result is handled - wrong,
	// not a percentage.
	assert.Equal(t, "3000", ConversionRate(40, 10, 0).String())
	assert.True(t, ConversionRate(10, 10, 5).IsZero())
}
