package store

import (
	"context"
	"fmt"

	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/entity"
)

type tasksStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Tasks() dependency.Tasks {
	return &tasksStore{MYSQLStore: ms}
}

func (s *tasksStore) Overview(ctx context.Context, w entity.Window) (*entity.TaskOverview, error) {
	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(status = 'open'), 0) AS open_tasks,
			COALESCE(SUM(status = 'closed'), 0) AS closed_tasks
		FROM task
		WHERE 1=1%s`,
		windowSQL("date", w, params))

	ov, err := QueryNamedOne[entity.TaskOverview](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("task overview: %w", err)
	}
	return &ov, nil
}

// TypeBreakdown groups task counts by the categorical task type.
func (s *tasksStore) TypeBreakdown(ctx context.Context, w entity.Window) ([]entity.TaskTypeStats, error) {
	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT task_type, COUNT(*) AS cnt
		FROM task
		WHERE 1=1%s
		GROUP BY task_type
		ORDER BY cnt DESC`,
		windowSQL("date", w, params))

	rows, err := QueryListNamed[entity.TaskTypeStats](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("task type breakdown: %w", err)
	}
	return rows, nil
}

// OrderJoinStats reads the precomputed task/booking union. The union is
// refreshed by the ingestion pipeline; this layer only aggregates it.
func (s *tasksStore) OrderJoinStats(ctx context.Context, w entity.Window) (*entity.OrderJoinStats, error) {
	params := map[string]any{}
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS orders,
			COALESCE(SUM(task_id IS NOT NULL AND booking_id IS NOT NULL), 0) AS matched_orders,
			COALESCE(SUM(task_id IS NULL AND booking_id IS NOT NULL), 0) AS unmatched_bookings
		FROM order_join
		WHERE 1=1%s`,
		windowSQL("date", w, params))

	st, err := QueryNamedOne[entity.OrderJoinStats](ctx, s.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("order join stats: %w", err)
	}
	return &st, nil
}
