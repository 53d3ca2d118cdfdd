package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/dto"
	"github.com/travelops/contact-insights/internal/entity"
	gerr "github.com/travelops/contact-insights/internal/errors"
	"github.com/travelops/contact-insights/internal/export"
	"github.com/travelops/contact-insights/internal/form"
	"github.com/travelops/contact-insights/internal/reporting"
)

// UserLoader resolves the authenticated user behind a request context.
type UserLoader interface {
	UserFromContext(ctx context.Context) (*entity.User, error)
}

// Server implements the KPI dashboard and admin endpoints.
type Server struct {
	repo     dependency.Repository
	users    UserLoader
	renderer *export.Renderer
}

func New(repo dependency.Repository, users UserLoader, renderer *export.Renderer) *Server {
	return &Server{
		repo:     repo,
		users:    users,
		renderer: renderer,
	}
}

// capability selects one endpoint flag of a permission record.
type capability func(p *entity.Permission) bool

var (
	canViewCalls    = func(p *entity.Permission) bool { return p.CanViewCalls }
	canViewEmails   = func(p *entity.Permission) bool { return p.CanViewEmails }
	canViewBookings = func(p *entity.Permission) bool { return p.CanViewBookings }
	canViewTasks    = func(p *entity.Permission) bool { return p.CanViewTasks }
	canViewFiles    = func(p *entity.Permission) bool { return p.CanViewFiles }
	canExport       = func(p *entity.Permission) bool { return p.CanExport }
)

// request is a fully resolved KPI request: identity, permission, window and
// company scope.
type request struct {
	user   *entity.User
	perm   *entity.Permission
	window entity.Window
	scope  entity.Scope
}

// resolve loads the identity and permission, gates the endpoint capability
// and turns the query parameters into a window and scope. Explicit dates win
// over the filter token; token-less requests default to the unbounded filter.
func (s *Server) resolve(r *http.Request, need capability) (*request, error) {
	u, err := s.users.UserFromContext(r.Context())
	if err != nil {
		return nil, err
	}

	var perm *entity.Permission
	p, err := s.repo.Users().GetPermission(r.Context(), u.Id)
	if err != nil && !errors.Is(err, gerr.ErrNotFound) {
		return nil, err
	}
	perm = p

	// users predating the permission system carry no record and keep their
	// legacy access; a record present means the flags govern
	if !u.Unrestricted() && perm != nil && !need(perm) {
		return nil, gerr.ErrUnauthorized
	}

	q := form.KPIRequest{
		FilterType: r.URL.Query().Get("filter_type"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		Company:    r.URL.Query().Get("company"),
		Domain:     r.URL.Query().Get("domain"),
	}
	if err := q.Validate(); err != nil {
		return nil, gerr.Validation(err)
	}

	var allowed []string
	if !u.Unrestricted() && perm != nil {
		allowed = perm.AllowedFilters()
	}

	var w entity.Window
	if q.StartDate != "" || q.EndDate != "" {
		w, err = reporting.ResolveExplicit(q.StartDate, q.EndDate)
		if err != nil {
			return nil, err
		}
		if !reporting.WithinCombinedRange(w, allowed, s.repo.Now()) {
			return nil, gerr.PermissionDenied(q.StartDate+".."+q.EndDate, allowed)
		}
	} else {
		filter := q.FilterType
		if filter == "" {
			filter = reporting.FilterAll
		}
		w, err = reporting.ResolveFilter(filter, allowed, s.repo.Now())
		if err != nil {
			return nil, err
		}
	}

	sc, err := reporting.ScopeForCompany(u, perm, q.Company, reporting.DomainFromParam(q.Domain))
	if err != nil {
		return nil, err
	}

	return &request{user: u, perm: perm, window: w, scope: sc}, nil
}

// Calls returns the call KPI overview with the per-day series.
func (s *Server) Calls(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolve(r, canViewCalls)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	ov, err := s.repo.Calls().Overview(r.Context(), req.window, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "call aggregation failed")
		return
	}
	days, err := s.repo.Calls().DailySeries(r.Context(), req.window, req.scope)
	if err != nil {
		// the overview stands on its own; a failed series is omitted
		slog.Default().ErrorContext(r.Context(), "call daily series failed", slog.String("err", err.Error()))
	}
	respondJSON(w, http.StatusOK, dto.NewCallsResponse(ov, days))
}

// CallsSubKPIs compares the fixed yesterday vs last-week windows.
func (s *Server) CallsSubKPIs(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolve(r, canViewCalls)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	cur, prev := reporting.SubKPIWindows(s.repo.Now())
	curOv, err := s.repo.Calls().Overview(r.Context(), cur, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "call aggregation failed")
		return
	}
	prevOv, err := s.repo.Calls().Overview(r.Context(), prev, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "call aggregation failed")
		return
	}

	respondJSON(w, http.StatusOK, &dto.SubKPIsResponse{
		Yesterday: map[string]any{
			"total_calls":    curOv.TotalCalls,
			"answered_calls": curOv.AnsweredCalls,
			"asr":            curOv.ASR.Round(1).StringFixed(1) + "%",
			"sla":            curOv.SLA.Round(1).StringFixed(1) + "%",
			"aht_minutes":    curOv.AHTMinutes.StringFixed(2),
		},
		LastWeek: map[string]any{
			"total_calls":    prevOv.TotalCalls,
			"answered_calls": prevOv.AnsweredCalls,
			"asr":            prevOv.ASR.Round(1).StringFixed(1) + "%",
			"sla":            prevOv.SLA.Round(1).StringFixed(1) + "%",
			"aht_minutes":    prevOv.AHTMinutes.StringFixed(2),
		},
		Change: map[string]string{
			"total_calls":    reporting.ChangeInt(curOv.TotalCalls, prevOv.TotalCalls),
			"answered_calls": reporting.ChangeInt(curOv.AnsweredCalls, prevOv.AnsweredCalls),
			"asr":            reporting.ChangeDecimal(curOv.ASR, prevOv.ASR),
			"sla":            reporting.ChangeDecimal(curOv.SLA, prevOv.SLA),
			"aht_minutes":    reporting.ChangeDecimal(curOv.AHTMinutes, prevOv.AHTMinutes),
		},
	})
}

// CallsWeekdays groups call totals by weekday.
func (s *Server) CallsWeekdays(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolve(r, canViewCalls)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	rows, err := s.repo.Calls().WeekdayBreakdown(r.Context(), req.window, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "weekday aggregation failed")
		return
	}
	resp := &dto.WeekdaysResponse{Weekdays: []dto.WeekdayCalls{}}
	for _, row := range rows {
		resp.Weekdays = append(resp.Weekdays, dto.WeekdayCalls{
			Weekday:       row.Weekday,
			TotalCalls:    row.TotalCalls,
			AnsweredCalls: row.AnsweredCalls,
			ASR:           row.ASR.Round(1).StringFixed(1) + "%",
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// Emails returns the email KPI overview with the per-day series.
func (s *Server) Emails(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolve(r, canViewEmails)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	ov, err := s.repo.Emails().Overview(r.Context(), req.window, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "email aggregation failed")
		return
	}
	days, err := s.repo.Emails().DailySeries(r.Context(), req.window, req.scope)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "email daily series failed", slog.String("err", err.Error()))
	}
	respondJSON(w, http.StatusOK, dto.NewEmailsResponse(ov, days))
}

// EmailsSubKPIs compares the fixed yesterday vs last-week windows.
func (s *Server) EmailsSubKPIs(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolve(r, canViewEmails)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	cur, prev := reporting.SubKPIWindows(s.repo.Now())
	curOv, err := s.repo.Emails().Overview(r.Context(), cur, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "email aggregation failed")
		return
	}
	prevOv, err := s.repo.Emails().Overview(r.Context(), prev, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "email aggregation failed")
		return
	}

	respondJSON(w, http.StatusOK, &dto.SubKPIsResponse{
		Yesterday: map[string]any{
			"received": curOv.Received,
			"sent":     curOv.Sent,
			"archived": curOv.Archived,
		},
		LastWeek: map[string]any{
			"received": prevOv.Received,
			"sent":     prevOv.Sent,
			"archived": prevOv.Archived,
		},
		Change: map[string]string{
			"received": reporting.ChangeInt(curOv.Received, prevOv.Received),
			"sent":     reporting.ChangeInt(curOv.Sent, prevOv.Sent),
			"archived": reporting.ChangeInt(curOv.Archived, prevOv.Archived),
		},
	})
}

// EmailMailboxes groups email counters by mailbox.
func (s *Server) EmailMailboxes(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolve(r, canViewEmails)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	rows, err := s.repo.Emails().MailboxBreakdown(r.Context(), req.window, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "mailbox aggregation failed")
		return
	}
	resp := &dto.MailboxesResponse{Mailboxes: []dto.Mailbox{}}
	for _, row := range rows {
		resp.Mailboxes = append(resp.Mailboxes, dto.Mailbox{
			Mailbox:              row.Mailbox,
			Received:             row.Received,
			Sent:                 row.Sent,
			AvgProcessingSeconds: row.AvgProcessingSeconds,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// Bookings returns booking status counts, rate and per-day series.
func (s *Server) Bookings(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolve(r, canViewBookings)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	ov, err := s.repo.Bookings().Overview(r.Context(), req.window, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "booking aggregation failed")
		return
	}
	days, err := s.repo.Bookings().DailySeries(r.Context(), req.window, req.scope)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "booking daily series failed", slog.String("err", err.Error()))
	}
	respondJSON(w, http.StatusOK, dto.NewBookingsResponse(ov, days))
}

// BookingsSubKPIs compares the fixed yesterday vs last-week windows.
func (s *Server) BookingsSubKPIs(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolve(r, canViewBookings)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	cur, prev := reporting.SubKPIWindows(s.repo.Now())
	curC, err := s.repo.Bookings().StatusCounts(r.Context(), cur, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "booking aggregation failed")
		return
	}
	prevC, err := s.repo.Bookings().StatusCounts(r.Context(), prev, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "booking aggregation failed")
		return
	}

	curRate := reporting.BookingRate(curC.Booked, curC.SoftBooked, curC.Cancelled)
	prevRate := reporting.BookingRate(prevC.Booked, prevC.SoftBooked, prevC.Cancelled)

	respondJSON(w, http.StatusOK, &dto.SubKPIsResponse{
		Yesterday: map[string]any{
			"booked":       curC.Booked,
			"soft_booked":  curC.SoftBooked,
			"cancelled":    curC.Cancelled,
			"total":        curC.Total,
			"booking_rate": curRate.Round(2).StringFixed(2) + "%",
		},
		LastWeek: map[string]any{
			"booked":       prevC.Booked,
			"soft_booked":  prevC.SoftBooked,
			"cancelled":    prevC.Cancelled,
			"total":        prevC.Total,
			"booking_rate": prevRate.Round(2).StringFixed(2) + "%",
		},
		Change: map[string]string{
			"booked":       reporting.ChangeInt(curC.Booked, prevC.Booked),
			"soft_booked":  reporting.ChangeInt(curC.SoftBooked, prevC.SoftBooked),
			"cancelled":    reporting.ChangeInt(curC.Cancelled, prevC.Cancelled),
			"total":        reporting.ChangeInt(curC.Total, prevC.Total),
			"booking_rate": reporting.ChangeDecimal(curRate, prevRate),
		},
	})
}

// Tasks assembles the task metrics independently; a failed sub-metric is
// logged and omitted instead of failing the whole response.
func (s *Server) Tasks(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolve(r, canViewTasks)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	resp := &dto.TasksResponse{Types: []dto.TaskType{}}

	if ov, err := s.repo.Tasks().Overview(r.Context(), req.window); err != nil {
		slog.Default().ErrorContext(r.Context(), "task overview failed", slog.String("err", err.Error()))
	} else {
		resp.Total = ov.Total
		resp.Open = ov.Open
		resp.Closed = ov.Closed
	}

	if types, err := s.repo.Tasks().TypeBreakdown(r.Context(), req.window); err != nil {
		slog.Default().ErrorContext(r.Context(), "task type breakdown failed", slog.String("err", err.Error()))
	} else {
		for _, tt := range types {
			resp.Types = append(resp.Types, dto.TaskType{TaskType: tt.TaskType, Count: tt.Count})
		}
	}

	if oj, err := s.repo.Tasks().OrderJoinStats(r.Context(), req.window); err != nil {
		slog.Default().ErrorContext(r.Context(), "order join stats failed", slog.String("err", err.Error()))
	} else {
		resp.Orders = oj.Orders
		resp.MatchedOrders = oj.MatchedOrders
		resp.UnmatchedBookings = oj.UnmatchedBookings
	}

	respondJSON(w, http.StatusOK, resp)
}

// Conversion relates handled non-wrong calls to bookings.
func (s *Server) Conversion(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolve(r, canViewCalls)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	reasons, err := s.repo.Calls().ReasonTotals(r.Context(), req.window)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "call reason aggregation failed")
		return
	}
	counts, err := s.repo.Bookings().StatusCounts(r.Context(), req.window, req.scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "booking aggregation failed")
		return
	}

	handled := reasons.SalesCalls + reasons.BookedCalls + reasons.ServiceCalls + reasons.OtherCalls
	bookings := counts.Booked + counts.SoftBooked
	rate := reporting.ConversionRate(handled, reasons.WrongCalls, bookings)

	respondJSON(w, http.StatusOK, &dto.ConversionResponse{
		SalesCalls:     reasons.SalesCalls,
		WrongCalls:     reasons.WrongCalls,
		HandledCalls:   handled,
		Bookings:       bookings,
		ConversionRate: rate.Round(1).StringFixed(1) + "%",
	})
}

// Export streams the bulk KPI workbook.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolve(r, canExport)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	f, err := s.renderer.Render(r.Context(), req.user, req.perm, req.window)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}
	defer f.Close()

	name := export.FileName(s.repo.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := f.Write(w); err != nil {
		slog.Default().ErrorContext(r.Context(), "export write failed", slog.String("err", err.Error()))
	}
}

// Files lists the ingestion history.
func (s *Server) Files(w http.ResponseWriter, r *http.Request) {
	_, err := s.resolve(r, canViewFiles)
	if err != nil {
		respondResolveError(w, err)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := s.repo.Files().List(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "file history failed")
		return
	}
	respondJSON(w, http.StatusOK, dto.NewFilesResponse(records))
}

// ListUsers returns every registered user. Admin only.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.Users().List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "user listing failed")
		return
	}
	respondJSON(w, http.StatusOK, dto.NewUsersResponse(users))
}

// ApproveUser activates a pending user with the posted permission record.
func (s *Server) ApproveUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req form.UpdatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.repo.Users().GetById(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err := s.repo.Users().Approve(r.Context(), id, req.ToEntity(id)); err != nil {
		if s.repo.IsErrUniqueViolation(err) {
			respondError(w, http.StatusConflict, "user already approved")
			return
		}
		respondError(w, http.StatusInternalServerError, "approval failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "user approved"})
}

// UpdatePermission replaces a user's permission record.
func (s *Server) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req form.UpdatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.repo.Users().UpdatePermission(r.Context(), id, req.ToEntity(id)); err != nil {
		respondError(w, http.StatusInternalServerError, "permission update failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "permission updated"})
}

// respondResolveError maps resolver errors to status codes; a permission
// denial carries the allowed set back to the caller.
func respondResolveError(w http.ResponseWriter, err error) {
	if pd, ok := gerr.IsPermissionDenied(err); ok {
		respondJSON(w, http.StatusForbidden, &dto.ErrorResponse{
			Error:          err.Error(),
			AllowedFilters: pd.Allowed,
		})
		return
	}
	if ve, ok := gerr.IsValidation(err); ok {
		respondError(w, http.StatusBadRequest, ve.Error())
		return
	}
	switch {
	case errors.Is(err, gerr.ErrInvalidRange):
		respondError(w, http.StatusBadRequest, "invalid date range")
	case errors.Is(err, gerr.ErrUnauthorized):
		respondError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, gerr.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	default:
		respondError(w, http.StatusInternalServerError, "request resolution failed")
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, &dto.ErrorResponse{Error: msg})
}
