package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QueueStatistics is one ingested row per (date, weekday, queue_name).
// QueueName encodes both company and Sales/Service domain by substring
// convention, e.g. "Urlaubsguru Service DE".
type QueueStatistics struct {
	Id                      int             `db:"id"`
	Date                    time.Time       `db:"date"`
	Weekday                 string          `db:"weekday"`
	QueueName               string          `db:"queue_name"`
	TotalCalls              int             `db:"total_calls"`
	AnsweredCalls           int             `db:"answered_calls"`
	ASR                     decimal.Decimal `db:"asr"`
	SLA2020                 decimal.Decimal `db:"sla_20_20"`
	AvgWaitTime             decimal.Decimal `db:"avg_wait_time"`
	MaxWaitTime             decimal.Decimal `db:"max_wait_time"`
	AvgHandlingTimeInbound  decimal.Decimal `db:"avg_handling_time_inbound"`
	OutboundCalls           int             `db:"outbound_calls"`
	AvgHandlingTimeOutbound decimal.Decimal `db:"avg_handling_time_outbound"`
}

// CallOverview aggregates queue statistics over a window and scope.
// ASR and SLA are simple averages of the stored percentages, AHT is the
// averaged inbound handling time converted to minutes.
type CallOverview struct {
	TotalCalls     int             `db:"total_calls"`
	AnsweredCalls  int             `db:"answered_calls"`
	OutboundCalls  int             `db:"outbound_calls"`
	ASR            decimal.Decimal `db:"asr"`
	SLA            decimal.Decimal `db:"sla"`
	AvgWaitSeconds decimal.Decimal `db:"avg_wait_seconds"`
	MaxWaitSeconds decimal.Decimal `db:"max_wait_seconds"`
	AHTMinutes     decimal.Decimal
}

type CallDay struct {
	Date          time.Time       `db:"d"`
	TotalCalls    int             `db:"total_calls"`
	AnsweredCalls int             `db:"answered_calls"`
	SLA           decimal.Decimal `db:"sla"`
}

type WeekdayCallStats struct {
	Weekday       string          `db:"weekday"`
	TotalCalls    int             `db:"total_calls"`
	AnsweredCalls int             `db:"answered_calls"`
	ASR           decimal.Decimal `db:"asr"`
}

// CallReasonTotals sums categorical call outcomes; numerators and
// denominators for the conversion rate.
type CallReasonTotals struct {
	SalesCalls   int `db:"sales_calls"`
	WrongCalls   int `db:"wrong_calls"`
	BookedCalls  int `db:"booked_calls"`
	ServiceCalls int `db:"service_calls"`
	OtherCalls   int `db:"other_calls"`
}
