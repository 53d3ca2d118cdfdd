package entity

import "time"

// Window is a resolved reporting window. The zero value means "no date
// predicate": the aggregator omits the date clause entirely rather than
// passing a degenerate range.
type Window struct {
	From time.Time
	To   time.Time
}

// Unbounded reports whether the window carries no date predicate.
func (w Window) Unbounded() bool {
	return w.From.IsZero() && w.To.IsZero()
}

// Days returns every day of the window in order, for per-day series layout.
// An unbounded window yields nil.
func (w Window) Days() []time.Time {
	if w.Unbounded() {
		return nil
	}
	var days []time.Time
	cur := time.Date(w.From.Year(), w.From.Month(), w.From.Day(), 0, 0, 0, 0, w.From.Location())
	end := time.Date(w.To.Year(), w.To.Month(), w.To.Day(), 0, 0, 0, 0, w.To.Location())
	for !cur.After(end) {
		days = append(days, cur)
		cur = cur.AddDate(0, 0, 1)
	}
	return days
}
