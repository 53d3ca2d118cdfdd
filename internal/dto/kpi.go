package dto

import "github.com/travelops/contact-insights/internal/entity"

// KPI response payloads. Percentages travel as strings with a "%" suffix,
// scalars as plain numbers, series as arrays of per-group objects.

type CallsResponse struct {
	TotalCalls     int       `json:"total_calls"`
	AnsweredCalls  int       `json:"answered_calls"`
	OutboundCalls  int       `json:"outbound_calls"`
	ASR            string    `json:"asr"`
	SLA            string    `json:"sla"`
	AHTMinutes     string    `json:"aht_minutes"`
	AvgWaitSeconds string    `json:"avg_wait_seconds"`
	MaxWaitSeconds string    `json:"max_wait_seconds"`
	Days           []CallDay `json:"days,omitempty"`
}

type CallDay struct {
	Date          string `json:"date"`
	TotalCalls    int    `json:"total_calls"`
	AnsweredCalls int    `json:"answered_calls"`
	SLA           string `json:"sla"`
}

type WeekdayCalls struct {
	Weekday       string `json:"weekday"`
	TotalCalls    int    `json:"total_calls"`
	AnsweredCalls int    `json:"answered_calls"`
	ASR           string `json:"asr"`
}

type WeekdaysResponse struct {
	Weekdays []WeekdayCalls `json:"weekdays"`
}

// SubKPIsResponse compares the fixed yesterday vs last-week pair; Change
// values are clamped percentage strings.
type SubKPIsResponse struct {
	Yesterday map[string]any    `json:"yesterday"`
	LastWeek  map[string]any    `json:"last_week"`
	Change    map[string]string `json:"change"`
}

type EmailsResponse struct {
	Received             int        `json:"received"`
	Sent                 int        `json:"sent"`
	Archived             int        `json:"archived"`
	AvgProcessingSeconds float64    `json:"avg_processing_seconds"`
	AvgDwellSeconds      float64    `json:"avg_dwell_seconds"`
	Days                 []EmailDay `json:"days,omitempty"`
}

type EmailDay struct {
	Date     string `json:"date"`
	Received int    `json:"received"`
	Sent     int    `json:"sent"`
	Archived int    `json:"archived"`
}

type Mailbox struct {
	Mailbox              string  `json:"mailbox"`
	Received             int     `json:"received"`
	Sent                 int     `json:"sent"`
	AvgProcessingSeconds float64 `json:"avg_processing_seconds"`
}

type MailboxesResponse struct {
	Mailboxes []Mailbox `json:"mailboxes"`
}

type BookingsResponse struct {
	Booked      int          `json:"booked"`
	SoftBooked  int          `json:"soft_booked"`
	Cancelled   int          `json:"cancelled"`
	Pending     int          `json:"pending"`
	OptionTaken int          `json:"option_taken"`
	Requested   int          `json:"requested"`
	Total       int          `json:"total"`
	BookingRate string       `json:"booking_rate"`
	TotalPrice  string       `json:"total_price"`
	Days        []BookingDay `json:"days,omitempty"`
}

type BookingDay struct {
	Date       string `json:"date"`
	Booked     int    `json:"booked"`
	SoftBooked int    `json:"soft_booked"`
	Cancelled  int    `json:"cancelled"`
	Total      int    `json:"total"`
}

type TasksResponse struct {
	Total             int        `json:"total"`
	Open              int        `json:"open"`
	Closed            int        `json:"closed"`
	Types             []TaskType `json:"types,omitempty"`
	Orders            int        `json:"orders"`
	MatchedOrders     int        `json:"matched_orders"`
	UnmatchedBookings int        `json:"unmatched_bookings"`
}

type TaskType struct {
	TaskType string `json:"task_type"`
	Count    int    `json:"count"`
}

type ConversionResponse struct {
	SalesCalls     int    `json:"sales_calls"`
	WrongCalls     int    `json:"wrong_calls"`
	HandledCalls   int    `json:"handled_calls"`
	Bookings       int    `json:"bookings"`
	ConversionRate string `json:"conversion_rate"`
}

type FileRecord struct {
	Id          int    `json:"id"`
	FileName    string `json:"file_name"`
	SourceType  string `json:"source_type"`
	RowCount    int    `json:"row_count"`
	Status      string `json:"status"`
	ErrorText   string `json:"error_text,omitempty"`
	ProcessedAt string `json:"processed_at"`
}

type FilesResponse struct {
	Files []FileRecord `json:"files"`
}

// NewCallsResponse converts the aggregate to the wire shape; percentage
// fields get one decimal and the "%" suffix.
func NewCallsResponse(ov *entity.CallOverview, days []entity.CallDay) *CallsResponse {
	resp := &CallsResponse{
		TotalCalls:     ov.TotalCalls,
		AnsweredCalls:  ov.AnsweredCalls,
		OutboundCalls:  ov.OutboundCalls,
		ASR:            ov.ASR.Round(1).StringFixed(1) + "%",
		SLA:            ov.SLA.Round(1).StringFixed(1) + "%",
		AHTMinutes:     ov.AHTMinutes.StringFixed(2),
		AvgWaitSeconds: ov.AvgWaitSeconds.StringFixed(1),
		MaxWaitSeconds: ov.MaxWaitSeconds.StringFixed(1),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, CallDay{
			Date:          d.Date.Format("2006-01-02"),
			TotalCalls:    d.TotalCalls,
			AnsweredCalls: d.AnsweredCalls,
			SLA:           d.SLA.Round(1).StringFixed(1) + "%",
		})
	}
	return resp
}

func NewEmailsResponse(ov *entity.EmailOverview, days []entity.EmailDay) *EmailsResponse {
	resp := &EmailsResponse{
		Received:             ov.Received,
		Sent:                 ov.Sent,
		Archived:             ov.Archived,
		AvgProcessingSeconds: ov.AvgProcessingSeconds,
		AvgDwellSeconds:      ov.AvgDwellSeconds,
	}
	for _, d := range days {
		resp.Days = append(resp.Days, EmailDay{
			Date:     d.Date.Format("2006-01-02"),
			Received: d.Received,
			Sent:     d.Sent,
			Archived: d.Archived,
		})
	}
	return resp
}

func NewBookingsResponse(ov *entity.BookingOverview, days []entity.BookingDay) *BookingsResponse {
	resp := &BookingsResponse{
		Booked:      ov.Counts.Booked,
		SoftBooked:  ov.Counts.SoftBooked,
		Cancelled:   ov.Counts.Cancelled,
		Pending:     ov.Counts.Pending,
		OptionTaken: ov.Counts.Option,
		Requested:   ov.Counts.Requested,
		Total:       ov.Counts.Total,
		BookingRate: ov.BookingRate.StringFixed(2) + "%",
		TotalPrice:  ov.TotalPrice.StringFixed(2),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, BookingDay{
			Date:       d.Date.Format("2006-01-02"),
			Booked:     d.Booked,
			SoftBooked: d.SoftBooked,
			Cancelled:  d.Cancelled,
			Total:      d.Total,
		})
	}
	return resp
}

func NewFilesResponse(records []entity.FileProcessingRecord) *FilesResponse {
	resp := &FilesResponse{Files: []FileRecord{}}
	for _, r := range records {
		resp.Files = append(resp.Files, FileRecord{
			Id:          r.Id,
			FileName:    r.FileName,
			SourceType:  r.SourceType,
			RowCount:    r.RowCount,
			Status:      r.Status,
			ErrorText:   r.ErrorText,
			ProcessedAt: r.ProcessedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp
}
