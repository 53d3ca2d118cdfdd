package export

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/entity"
)

type stubRepo struct {
	dependency.Repository
}

func (s *stubRepo) Calls() dependency.Calls       { return stubCalls{} }
func (s *stubRepo) Emails() dependency.Emails     { return stubEmails{} }
func (s *stubRepo) Bookings() dependency.Bookings { return stubBookings{} }

var day = time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC)

type stubCalls struct{}

func (stubCalls) Overview(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.CallOverview, error) {
	return &entity.CallOverview{}, nil
}

func (stubCalls) DailySeries(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.CallDay, error) {
	return []entity.CallDay{
		{Date: day, TotalCalls: 120, AnsweredCalls: 110, SLA: decimal.NewFromFloat(91.5)},
	}, nil
}

func (stubCalls) WeekdayBreakdown(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.WeekdayCallStats, error) {
	return nil, nil
}

func (stubCalls) ReasonTotals(ctx context.Context, w entity.Window) (*entity.CallReasonTotals, error) {
	return &entity.CallReasonTotals{SalesCalls: 40, WrongCalls: 5, BookedCalls: 20, ServiceCalls: 30, OtherCalls: 10}, nil
}

type stubEmails struct{}

func (stubEmails) Overview(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.EmailOverview, error) {
	return &entity.EmailOverview{}, nil
}

func (stubEmails) DailySeries(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.EmailDay, error) {
	return []entity.EmailDay{{Date: day, Received: 50, Sent: 45, Archived: 40}}, nil
}

func (stubEmails) MailboxBreakdown(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.MailboxStats, error) {
	return nil, nil
}

type stubBookings struct{}

func (stubBookings) StatusCounts(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.BookingStatusCounts, error) {
	return &entity.BookingStatusCounts{Booked: 8, SoftBooked: 2, Cancelled: 2, Total: 12}, nil
}

func (stubBookings) Overview(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.BookingOverview, error) {
	return &entity.BookingOverview{}, nil
}

func (stubBookings) DailySeries(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.BookingDay, error) {
	return []entity.BookingDay{{Date: day, Booked: 8, SoftBooked: 2, Cancelled: 2, Total: 12}}, nil
}

func TestRenderAdminWorkbook(t *testing.T) {
	r := New(nil, &stubRepo{})
	admin := &entity.User{Email: "ops@travelops.de", Role: entity.UserRoleAdmin}
	w := entity.Window{From: day, To: day}

	f, err := r.Render(context.Background(), admin, nil, w)
	require.NoError(t, err)
	defer f.Close()

	// one worksheet per accessible company, default sheet removed
	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{"5vorflug", "Urlaubsguru", "Bild", "Galeria", "ADAC", "Urlaub"}, sheets)

	// split companies carry Sales and Service blocks
	v, err := f.GetCellValue("Urlaubsguru", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sales", v)

	// non-split companies carry a single overview block
	v, err = f.GetCellValue("Galeria", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Overview", v)

	// day row merged across the three sources
	v, err = f.GetCellValue("Galeria", "A3")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-29", v)
}

func TestRenderScopedCustomer(t *testing.T) {
	r := New(&Config{Parallelism: 1}, &stubRepo{})
	customer := &entity.User{Email: "kpi@customer.de", Role: entity.UserRoleCustomer}
	p := &entity.Permission{Domains: "bild"}
	w := entity.Window{From: day, To: day}

	f, err := r.Render(context.Background(), customer, p, w)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Bild"}, f.GetSheetList())
}

func TestRenderNoCompanies(t *testing.T) {
	r := New(nil, &stubRepo{})
	customer := &entity.User{Email: "kpi@customer.de", Role: entity.UserRoleCustomer}
	p := &entity.Permission{Domains: "unknowncorp"}

	_, err := r.Render(context.Background(), customer, p, entity.Window{})
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 12, 30, 10, 0, 0, 0, time.UTC)
	name := FileName(now)
	assert.Contains(t, name, "kpi-export-2024-12-30-")
	assert.Contains(t, name, ".xlsx")
}
