package store

import (
	"context"
	"fmt"

	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/entity"
	"github.com/travelops/contact-insights/internal/reporting"
)

type emailsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Emails() dependency.Emails {
	return &emailsStore{MYSQLStore: ms}
}

// Overview sums the workflow counters and folds the free-text duration
// fields row by row. The duration parser recovers unparseable values as 0,
// so one bad export row never fails the whole aggregation.
func (s *emailsStore) Overview(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.EmailOverview, error) {
	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(received), 0) AS received,
			COALESCE(SUM(sent), 0) AS sent,
			COALESCE(SUM(archived), 0) AS archived
		FROM email_workflow
		WHERE 1=1%s%s`,
		windowSQL("date", w, params), scopeSQL("customer", sc, params))

	ov, err := QueryNamedOne[entity.EmailOverview](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("email overview: %w", err)
	}

	durations, err := s.durationRows(ctx, w, sc)
	if err != nil {
		return nil, err
	}
	var procSum, dwellSum float64
	for _, d := range durations {
		procSum += reporting.DurationSeconds(d.ProcessingTime)
		dwellSum += reporting.DurationSeconds(d.DwellTimeNet)
	}
	if n := len(durations); n > 0 {
		ov.AvgProcessingSeconds = procSum / float64(n)
		ov.AvgDwellSeconds = dwellSum / float64(n)
	}
	return &ov, nil
}

// DailySeries returns per-day workflow counters keyed by date.
func (s *emailsStore) DailySeries(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.EmailDay, error) {
	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT date AS d,
			COALESCE(SUM(received), 0) AS received,
			COALESCE(SUM(sent), 0) AS sent,
			COALESCE(SUM(archived), 0) AS archived
		FROM email_workflow
		WHERE 1=1%s%s
		GROUP BY date
		ORDER BY d`,
		windowSQL("date", w, params), scopeSQL("customer", sc, params))

	rows, err := QueryListNamed[entity.EmailDay](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("email daily series: %w", err)
	}
	return rows, nil
}

// MailboxBreakdown groups counters by mailbox and averages the parsed
// processing time per group.
func (s *emailsStore) MailboxBreakdown(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.MailboxStats, error) {
	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT mailbox, received, sent, processing_time
		FROM email_workflow
		WHERE 1=1%s%s
		ORDER BY mailbox`,
		windowSQL("date", w, params), scopeSQL("customer", sc, params))

	type row struct {
		Mailbox        string `db:"mailbox"`
		Received       int    `db:"received"`
		Sent           int    `db:"sent"`
		ProcessingTime string `db:"processing_time"`
	}
	rows, err := QueryListNamed[row](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("mailbox breakdown: %w", err)
	}

	type acc struct {
		stats entity.MailboxStats
		sum   float64
		n     int
	}
	byBox := map[string]*acc{}
	var order []string
	for _, r := range rows {
		a, ok := byBox[r.Mailbox]
		if !ok {
			a = &acc{stats: entity.MailboxStats{Mailbox: r.Mailbox}}
			byBox[r.Mailbox] = a
			order = append(order, r.Mailbox)
		}
		a.stats.Received += r.Received
		a.stats.Sent += r.Sent
		a.sum += reporting.DurationSeconds(r.ProcessingTime)
		a.n++
	}
	out := make([]entity.MailboxStats, 0, len(order))
	for _, box := range order {
		a := byBox[box]
		if a.n > 0 {
			a.stats.AvgProcessingSeconds = a.sum / float64(a.n)
		}
		out = append(out, a.stats)
	}
	return out, nil
}

func (s *emailsStore) durationRows(ctx context.Context, w entity.Window, sc entity.Scope) ([]struct {
	ProcessingTime string `db:"processing_time"`
	DwellTimeNet   string `db:"dwell_time_net"`
}, error) {
	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT processing_time, dwell_time_net
		FROM email_workflow
		WHERE 1=1%s%s`,
		windowSQL("date", w, params), scopeSQL("customer", sc, params))

	rows, err := QueryListNamed[struct {
		ProcessingTime string `db:"processing_time"`
		DwellTimeNet   string `db:"dwell_time_net"`
	}](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("duration rows: %w", err)
	}
	return rows, nil
}
