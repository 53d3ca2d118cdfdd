package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/entity"
	"github.com/travelops/contact-insights/internal/reporting"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the export renderer.
type Config struct {
	Parallelism int `mapstructure:"parallelism"`
}

// Renderer assembles the bulk KPI workbook: one worksheet per accessible
// company, split companies with separate Sales and Service blocks.
type Renderer struct {
	repo dependency.Repository
	c    *Config
}

func New(c *Config, repo dependency.Repository) *Renderer {
	if c == nil {
		c = &Config{}
	}
	if c.Parallelism <= 0 {
		c.Parallelism = 4
	}
	return &Renderer{repo: repo, c: c}
}

// FileName returns a unique attachment name for one export run.
func FileName(now time.Time) string {
	return fmt.Sprintf("kpi-export-%s-%s.xlsx", now.Format("2006-01-02"), uuid.NewString()[:8])
}

// block is the per-domain slice of one company's worksheet.
type block struct {
	label    string
	calls    []entity.CallDay
	emails   []entity.EmailDay
	bookings []entity.BookingDay
	counts   *entity.BookingStatusCounts
}

// companyData is everything gathered for one worksheet before writing.
type companyData struct {
	token      string
	blocks     []block
	conversion *conversionData
}

type conversionData struct {
	reasons  *entity.CallReasonTotals
	bookings int
}

// Render queries every accessible company concurrently and assembles the
// workbook sequentially; excelize files are not safe for concurrent writes.
func (r *Renderer) Render(ctx context.Context, u *entity.User, p *entity.Permission, w entity.Window) (*excelize.File, error) {
	companies := reporting.AccessibleCompanies(u, p)
	if len(companies) == 0 {
		return nil, fmt.Errorf("no accessible companies")
	}

	data := make([]*companyData, len(companies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.c.Parallelism)
	for i, token := range companies {
		i, token := i, token
		g.Go(func() error {
			cd, err := r.gather(gctx, token, w)
			if err != nil {
				return fmt.Errorf("company %s: %w", token, err)
			}
			data[i] = cd
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	for _, cd := range data {
		if err := writeSheet(f, cd); err != nil {
			f.Close()
			return nil, err
		}
	}
	// drop the default sheet excelize creates
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (r *Renderer) gather(ctx context.Context, token string, w entity.Window) (*companyData, error) {
	clause, ok := reporting.CompanyClause(token)
	if !ok {
		return nil, fmt.Errorf("unknown company token %q", token)
	}

	cd := &companyData{token: token}

	domains := []struct {
		label  string
		filter entity.DomainFilter
	}{{label: "Overview", filter: entity.DomainAll}}
	if reporting.SplitCompany(token) {
		domains = []struct {
			label  string
			filter entity.DomainFilter
		}{
			{label: "Sales", filter: entity.DomainSales},
			{label: "Service", filter: entity.DomainService},
		}
	}

	for _, d := range domains {
		sc := entity.Scope{Clauses: []entity.ScopeClause{clause}, Domain: d.filter}
		b := block{label: d.label}
		var err error
		if b.calls, err = r.repo.Calls().DailySeries(ctx, w, sc); err != nil {
			return nil, err
		}
		if b.emails, err = r.repo.Emails().DailySeries(ctx, w, sc); err != nil {
			return nil, err
		}
		if b.bookings, err = r.repo.Bookings().DailySeries(ctx, w, sc); err != nil {
			return nil, err
		}
		if b.counts, err = r.repo.Bookings().StatusCounts(ctx, w, sc); err != nil {
			return nil, err
		}
		cd.blocks = append(cd.blocks, b)
	}

	// conversion is reported for split companies only; the call-reason source
	// is company-agnostic, booking counts are not
	if reporting.SplitCompany(token) {
		reasons, err := r.repo.Calls().ReasonTotals(ctx, w)
		if err != nil {
			return nil, err
		}
		sc := entity.Scope{Clauses: []entity.ScopeClause{clause}}
		counts, err := r.repo.Bookings().StatusCounts(ctx, w, sc)
		if err != nil {
			return nil, err
		}
		cd.conversion = &conversionData{
			reasons:  reasons,
			bookings: counts.Booked + counts.SoftBooked,
		}
	}

	return cd, nil
}

func writeSheet(f *excelize.File, cd *companyData) error {
	sheet := reporting.CompanyDisplayName(cd.token)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	_ = f.SetColWidth(sheet, "A", "I", 16)

	row := 1
	for _, b := range cd.blocks {
		row = writeBlock(f, sheet, row, b)
	}

	if cd.conversion != nil {
		handled := cd.conversion.reasons.SalesCalls + cd.conversion.reasons.BookedCalls + cd.conversion.reasons.ServiceCalls + cd.conversion.reasons.OtherCalls
		rate := reporting.ConversionRate(handled, cd.conversion.reasons.WrongCalls, cd.conversion.bookings)

		setRow(f, sheet, row, "Conversion")
		row++
		setRow(f, sheet, row, "Handled Calls", "Wrong Calls", "Bookings", "Conversion Rate")
		row++
		setRow(f, sheet, row, handled, cd.conversion.reasons.WrongCalls, cd.conversion.bookings, rate.Round(1).StringFixed(1)+"%")
		row += 2
	}
	return nil
}

// writeBlock renders one domain block and returns the next free row. The
// three series are merged on the day column; days present in one source and
// absent in another render as zero.
func writeBlock(f *excelize.File, sheet string, row int, b block) int {
	setRow(f, sheet, row, b.label)
	row++
	setRow(f, sheet, row, "Date", "Total Calls", "Answered", "SLA",
		"Emails Received", "Emails Sent", "Booked", "Soft Booked", "Cancelled")
	row++

	type dayRow struct {
		calls    *entity.CallDay
		emails   *entity.EmailDay
		bookings *entity.BookingDay
	}
	merged := map[string]*dayRow{}
	var order []string
	touch := func(d time.Time) *dayRow {
		key := d.Format("2006-01-02")
		dr, ok := merged[key]
		if !ok {
			dr = &dayRow{}
			merged[key] = dr
			order = append(order, key)
		}
		return dr
	}
	for i := range b.calls {
		touch(b.calls[i].Date).calls = &b.calls[i]
	}
	for i := range b.emails {
		touch(b.emails[i].Date).emails = &b.emails[i]
	}
	for i := range b.bookings {
		touch(b.bookings[i].Date).bookings = &b.bookings[i]
	}

	var totalCalls, answered, received, sent, booked, soft, cancelled int
	for _, key := range order {
		dr := merged[key]
		vals := []any{key, 0, 0, "0.0%", 0, 0, 0, 0, 0}
		if dr.calls != nil {
			vals[1] = dr.calls.TotalCalls
			vals[2] = dr.calls.AnsweredCalls
			vals[3] = dr.calls.SLA.Round(1).StringFixed(1) + "%"
			totalCalls += dr.calls.TotalCalls
			answered += dr.calls.AnsweredCalls
		}
		if dr.emails != nil {
			vals[4] = dr.emails.Received
			vals[5] = dr.emails.Sent
			received += dr.emails.Received
			sent += dr.emails.Sent
		}
		if dr.bookings != nil {
			vals[6] = dr.bookings.Booked
			vals[7] = dr.bookings.SoftBooked
			vals[8] = dr.bookings.Cancelled
			booked += dr.bookings.Booked
			soft += dr.bookings.SoftBooked
			cancelled += dr.bookings.Cancelled
		}
		setRow(f, sheet, row, vals...)
		row++
	}

	rate := reporting.BookingRate(booked, soft, cancelled)
	setRow(f, sheet, row, "Total", totalCalls, answered, "",
		received, sent, booked, soft, cancelled)
	row++
	setRow(f, sheet, row, "Booking Rate", rate.Round(2).StringFixed(2)+"%")
	row += 2
	return row
}

func setRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(sheet, cell, v)
	}
}
