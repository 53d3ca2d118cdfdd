package reporting

import (
	"testing"
	"time"

	gerr "github.com/travelops/contact-insights/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelops/contact-insights/internal/entity"
)

var testNow = time.Date(2024, 12, 30, 10, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveFilter(t *testing.T) {
	t.Run("recognized tokens", func(t *testing.T) {
		w, err := ResolveFilter(FilterYesterday, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, day(2024, 12, 29), w.From)
		assert.Equal(t, day(2024, 12, 29), w.To)

		w, err = ResolveFilter(FilterLastWeek, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, day(2024, 12, 23), w.From)
		assert.Equal(t, day(2024, 12, 29), w.To)

		w, err = ResolveFilter(FilterLastMonth, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, day(2024, 11, 30), w.From)
		assert.Equal(t, day(2024, 12, 29), w.To)

		w, err = ResolveFilter(FilterLastYear, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, day(2023, 12, 31), w.From)
		assert.Equal(t, day(2024, 12, 29), w.To)
	})

	t.Run("only all is unbounded", func(t *testing.T) {
		for _, tok := range AllFilters {
			w, err := ResolveFilter(tok, nil, testNow)
			require.NoError(t, err)
			if tok == FilterAll {
				assert.True(t, w.Unbounded())
				continue
			}
			assert.False(t, w.Unbounded())
			assert.False(t, w.To.Before(w.From), "end must not precede start for %s", tok)
		}
	})

	t.Run("permission gate carries allowed set", func(t *testing.T) {
		_, err := ResolveFilter(FilterYesterday, []string{FilterLastWeek}, testNow)
		require.Error(t, err)
		pd, ok := gerr.IsPermissionDenied(err)
		require.True(t, ok)
		assert.Equal(t, []string{FilterLastWeek}, pd.Allowed)
		assert.Equal(t, FilterYesterday, pd.Requested)
	})

	t.Run("empty allowed set permits everything", func(t *testing.T) {
		for _, tok := range AllFilters {
			_, err := ResolveFilter(tok, nil, testNow)
			assert.NoError(t, err)
		}
	})
}

func TestResolveExplicit(t *testing.T) {
	t.Run("both dates", func(t *testing.T) {
		w, err := ResolveExplicit("2024-12-01", "2024-12-15")
		require.NoError(t, err)
		assert.Equal(t, day(2024, 12, 1), w.From)
		assert.Equal(t, day(2024, 12, 15), w.To)
	})

	t.Run("single date collapses", func(t *testing.T) {
		w, err := ResolveExplicit("2024-12-01", "")
		require.NoError(t, err)
		assert.Equal(t, w.From, w.To)

		w, err = ResolveExplicit("", "2024-12-15")
		require.NoError(t, err)
		assert.Equal(t, day(2024, 12, 15), w.From)
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		_, err := ResolveExplicit("2024-12-15", "2024-12-01")
		assert.ErrorIs(t, err, gerr.ErrInvalidRange)
	})

	t.Run("garbage date is rejected", func(t *testing.T) {
		_, err := ResolveExplicit("yesterday", "")
		assert.ErrorIs(t, err, gerr.ErrInvalidRange)
	})
}

func TestCombinedRange(t *testing.T) {
	t.Run("union of windows", func(t *testing.T) {
		w := CombinedRange([]string{FilterYesterday, FilterLastMonth}, testNow)
		assert.Equal(t, day(2024, 11, 30), w.From)
		assert.Equal(t, day(2024, 12, 29), w.To)
	})

	t.Run("all short-circuits", func(t *testing.T) {
		w := CombinedRange([]string{FilterYesterday, FilterAll}, testNow)
		assert.True(t, w.Unbounded())
	})
}

func TestWithinCombinedRange(t *testing.T) {
	allowed := []string{FilterLastWeek}
	inside, err := ResolveExplicit("2024-12-24", "2024-12-28")
	require.NoError(t, err)
	assert.True(t, WithinCombinedRange(inside, allowed, testNow))

	outside, err := ResolveExplicit("2024-11-01", "2024-12-28")
	require.NoError(t, err)
	assert.False(t, WithinCombinedRange(outside, allowed, testNow))
}

func TestSubKPIWindows(t *testing.T) {
	cur, prev := SubKPIWindows(testNow)
	assert.Equal(t, day(2024, 12, 29), cur.From)
	assert.Equal(t, day(2024, 12, 29), cur.To)
	assert.Equal(t, day(2024, 12, 23), prev.From)
	assert.Equal(t, day(2024, 12, 29), prev.To)
}

func TestBookingWindow(t *testing.T) {
	w, err := ResolveExplicit("2024-12-01", "2024-12-01")
	require.NoError(t, err)
	bw := BookingWindow(w)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), bw.From)
	assert.Equal(t, time.Date(2024, 12, 1, 23, 59, 59, 999999000, time.UTC), bw.To)

	assert.True(t, BookingWindow(entity.Window{}).Unbounded())
}
