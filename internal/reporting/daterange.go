package reporting

import (
	"time"

	gerr "github.com/travelops/contact-insights/internal/errors"

	"github.com/travelops/contact-insights/internal/entity"
)

// Date-filter tokens a permission record may grant.
const (
	FilterAll       = "all"
	FilterYesterday = "yesterday"
	FilterLastWeek  = "last_week"
	FilterLastMonth = "last_month"
	FilterLastYear  = "last_year"
)

// AllFilters lists every recognized token. A user without a permission
// record is allowed all of them.
var AllFilters = []string{FilterAll, FilterYesterday, FilterLastWeek, FilterLastMonth, FilterLastYear}

const dateLayout = "2006-01-02"

// ResolveFilter turns a requested filter token into a concrete window,
// validated against the user's allowed set. A nil or empty allowed set
// permits every token. FilterAll resolves to the unbounded window.
func ResolveFilter(filter string, allowed []string, now time.Time) (entity.Window, error) {
	if len(allowed) == 0 {
		allowed = AllFilters
	}
	if !containsToken(allowed, filter) {
		return entity.Window{}, gerr.PermissionDenied(filter, allowed)
	}
	return windowFor(filter, now), nil
}

// ResolveExplicit resolves an explicit start/end date pair. A single date
// collapses to a one-day window. Both dates are used as-is when given.
func ResolveExplicit(startDate, endDate string) (entity.Window, error) {
	if startDate == "" && endDate == "" {
		return entity.Window{}, nil
	}
	if startDate == "" {
		startDate = endDate
	}
	if endDate == "" {
		endDate = startDate
	}
	from, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return entity.Window{}, gerr.ErrInvalidRange
	}
	to, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return entity.Window{}, gerr.ErrInvalidRange
	}
	if from.After(to) {
		return entity.Window{}, gerr.ErrInvalidRange
	}
	return entity.Window{From: from, To: to}, nil
}

// CombinedRange unions the concrete windows of every allowed token, used as
// a secondary bound check by stricter call sites. FilterAll in the set
// short-circuits to unbounded.
func CombinedRange(allowed []string, now time.Time) entity.Window {
	if len(allowed) == 0 {
		allowed = AllFilters
	}
	var combined entity.Window
	for _, tok := range allowed {
		if tok == FilterAll {
			return entity.Window{}
		}
		w := windowFor(tok, now)
		if w.Unbounded() {
			continue
		}
		if combined.Unbounded() {
			combined = w
			continue
		}
		if w.From.Before(combined.From) {
			combined.From = w.From
		}
		if w.To.After(combined.To) {
			combined.To = w.To
		}
	}
	return combined
}

// WithinCombinedRange reports whether an explicit window fits the union of
// the allowed tokens' windows.
func WithinCombinedRange(w entity.Window, allowed []string, now time.Time) bool {
	combined := CombinedRange(allowed, now)
	if combined.Unbounded() {
		return true
	}
	if w.Unbounded() {
		return false
	}
	return !w.From.Before(combined.From) && !w.To.After(combined.To)
}

// SubKPIWindows returns the fixed comparison pair for sub-KPI endpoints:
// yesterday against last week, regardless of the requested filter.
func SubKPIWindows(now time.Time) (current, previous entity.Window) {
	return windowFor(FilterYesterday, now), windowFor(FilterLastWeek, now)
}

// BookingWindow expands date-only bounds to full-day datetime bounds,
// because booking timestamps carry time-of-day.
func BookingWindow(w entity.Window) entity.Window {
	if w.Unbounded() {
		return w
	}
	from := time.Date(w.From.Year(), w.From.Month(), w.From.Day(), 0, 0, 0, 0, w.From.Location())
	to := time.Date(w.To.Year(), w.To.Month(), w.To.Day(), 23, 59, 59, 999999000, w.To.Location())
	return entity.Window{From: from, To: to}
}

func windowFor(token string, now time.Time) entity.Window {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	switch token {
	case FilterYesterday:
		return entity.Window{From: yesterday, To: yesterday}
	case FilterLastWeek:
		return entity.Window{From: today.AddDate(0, 0, -7), To: yesterday}
	case FilterLastMonth:
		return entity.Window{From: today.AddDate(0, 0, -30), To: yesterday}
	case FilterLastYear:
		return entity.Window{From: today.AddDate(0, 0, -365), To: yesterday}
	default:
		return entity.Window{}
	}
}

func containsToken(tokens []string, tok string) bool {
	for _, t := range tokens {
		if t == tok {
			return true
		}
	}
	return false
}
