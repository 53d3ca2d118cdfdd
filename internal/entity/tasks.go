package entity

import "time"

type Task struct {
	Id          int       `db:"id"`
	Date        time.Time `db:"date"`
	TaskType    string    `db:"task_type"`
	OrderNumber string    `db:"order_number"`
	Status      string    `db:"status"`
	Agent       string    `db:"agent"`
}

type TaskOverview struct {
	Total  int `db:"total"`
	Open   int `db:"open_tasks"`
	Closed int `db:"closed_tasks"`
}

type TaskTypeStats struct {
	TaskType string `db:"task_type"`
	Count    int    `db:"cnt"`
}

// OrderJoinStats summarizes the precomputed task/booking union refreshed by
// the ingestion pipeline. Unmatched are bookings with no task row sharing
// the order number.
type OrderJoinStats struct {
	Orders            int `db:"orders"`
	MatchedOrders     int `db:"matched_orders"`
	UnmatchedBookings int `db:"unmatched_bookings"`
}
