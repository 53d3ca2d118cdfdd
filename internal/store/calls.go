package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/entity"
)

type callsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Calls() dependency.Calls {
	return &callsStore{MYSQLStore: ms}
}

// Overview aggregates queue statistics over the window and scope. Every
// scalar is coalesced to zero so absent data never raises; ASR and SLA are
// simple averages of the stored percentages, not recomputed from raw counts.
func (s *callsStore) Overview(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.CallOverview, error) {
	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(total_calls), 0) AS total_calls,
			COALESCE(SUM(answered_calls), 0) AS answered_calls,
			COALESCE(SUM(outbound_calls), 0) AS outbound_calls,
			COALESCE(AVG(asr), 0) AS asr,
			COALESCE(AVG(sla_20_20), 0) AS sla,
			COALESCE(AVG(avg_wait_time), 0) AS avg_wait_seconds,
			COALESCE(MAX(max_wait_time), 0) AS max_wait_seconds,
			COALESCE(AVG(avg_handling_time_inbound), 0) AS aht_seconds
		FROM queue_statistics
		WHERE 1=1%s%s`,
		windowSQL("date", w, params), scopeSQL("queue_name", sc, params))

	type row struct {
		entity.CallOverview
		AHTSeconds decimal.Decimal `db:"aht_seconds"`
	}
	r, err := QueryNamedOne[row](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("call overview: %w", err)
	}
	ov := r.CallOverview
	ov.AHTMinutes = r.AHTSeconds.Div(decimal.NewFromInt(60)).Round(2)
	return &ov, nil
}

// DailySeries returns per-day call totals keyed by date, for charts and the
// export layout.
func (s *callsStore) DailySeries(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.CallDay, error) {
	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT date AS d,
			COALESCE(SUM(total_calls), 0) AS total_calls,
			COALESCE(SUM(answered_calls), 0) AS answered_calls,
			COALESCE(AVG(sla_20_20), 0) AS sla
		FROM queue_statistics
		WHERE 1=1%s%s
		GROUP BY date
		ORDER BY d`,
		windowSQL("date", w, params), scopeSQL("queue_name", sc, params))

	rows, err := QueryListNamed[entity.CallDay](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("call daily series: %w", err)
	}
	return rows, nil
}

// WeekdayBreakdown groups the same aggregation by the stored weekday label.
func (s *callsStore) WeekdayBreakdown(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.WeekdayCallStats, error) {
	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT weekday,
			COALESCE(SUM(total_calls), 0) AS total_calls,
			COALESCE(SUM(answered_calls), 0) AS answered_calls,
			COALESCE(AVG(asr), 0) AS asr
		FROM queue_statistics
		WHERE 1=1%s%s
		GROUP BY weekday
		ORDER BY FIELD(weekday, 'Monday', 'Tuesday', 'Wednesday', 'Thursday', 'Friday', 'Saturday', 'Sunday')`,
		windowSQL("date", w, params), scopeSQL("queue_name", sc, params))

	rows, err := QueryListNamed[entity.WeekdayCallStats](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("weekday breakdown: %w", err)
	}
	return rows, nil
}

// ReasonTotals sums categorical call outcomes for the conversion KPI. The
// call-reason export carries no company column, so only the window applies.
func (s *callsStore) ReasonTotals(ctx context.Context, w entity.Window) (*entity.CallReasonTotals, error) {
	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(sales_count), 0) AS sales_calls,
			COALESCE(SUM(wrong_call_count), 0) AS wrong_calls,
			COALESCE(SUM(booking_count), 0) AS booked_calls,
			COALESCE(SUM(service_count), 0) AS service_calls,
			COALESCE(SUM(other_count), 0) AS other_calls
		FROM call_reason
		WHERE 1=1%s`,
		windowSQL("date", w, params))

	r, err := QueryNamedOne[entity.CallReasonTotals](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("reason totals: %w", err)
	}
	return &r, nil
}
