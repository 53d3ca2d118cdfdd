package entity

import "time"

// EmailWorkflow is one ingested row per (date, customer, mailbox, interval).
// DwellTimeNet and ProcessingTime are free-text durations in mixed
// mm:ss / hh:mm:ss / decimal-minute formats.
type EmailWorkflow struct {
	Id             int       `db:"id"`
	Date           time.Time `db:"date"`
	Customer       string    `db:"customer"`
	Mailbox        string    `db:"mailbox"`
	Interval       string    `db:"interval_label"`
	Received       int       `db:"received"`
	Sent           int       `db:"sent"`
	Archived       int       `db:"archived"`
	DwellTimeNet   string    `db:"dwell_time_net"`
	ProcessingTime string    `db:"processing_time"`
}

type EmailOverview struct {
	Received             int `db:"received"`
	Sent                 int `db:"sent"`
	Archived             int `db:"archived"`
	AvgProcessingSeconds float64
	AvgDwellSeconds      float64
}

type EmailDay struct {
	Date     time.Time `db:"d"`
	Received int       `db:"received"`
	Sent     int       `db:"sent"`
	Archived int       `db:"archived"`
}

type MailboxStats struct {
	Mailbox              string
	Received             int
	Sent                 int
	AvgProcessingSeconds float64
}
