package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/travelops/contact-insights/internal/entity"
)

type (
	Calls interface {
		// Overview aggregates the queue statistics over the window and scope.
		Overview(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.CallOverview, error)
		// DailySeries returns per-day call totals for charts and exports.
		DailySeries(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.CallDay, error)
		// WeekdayBreakdown groups call totals by weekday label.
		WeekdayBreakdown(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.WeekdayCallStats, error)
		// ReasonTotals sums categorical call outcomes; the source carries no
		// company column, so only the window applies.
		ReasonTotals(ctx context.Context, w entity.Window) (*entity.CallReasonTotals, error)
	}

	Emails interface {
		Overview(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.EmailOverview, error)
		DailySeries(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.EmailDay, error)
		MailboxBreakdown(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.MailboxStats, error)
	}

	Bookings interface {
		StatusCounts(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.BookingStatusCounts, error)
		Overview(ctx context.Context, w entity.Window, sc entity.Scope) (*entity.BookingOverview, error)
		DailySeries(ctx context.Context, w entity.Window, sc entity.Scope) ([]entity.BookingDay, error)
	}

	Tasks interface {
		Overview(ctx context.Context, w entity.Window) (*entity.TaskOverview, error)
		TypeBreakdown(ctx context.Context, w entity.Window) ([]entity.TaskTypeStats, error)
		OrderJoinStats(ctx context.Context, w entity.Window) (*entity.OrderJoinStats, error)
	}

	Users interface {
		GetByEmail(ctx context.Context, email string) (*entity.User, error)
		GetById(ctx context.Context, id int) (*entity.User, error)
		List(ctx context.Context) ([]entity.User, error)
		AddUser(ctx context.Context, email, pwHash string, role entity.UserRole) (int, error)
		UpdatePassword(ctx context.Context, email, pwHash string) error
		// GetPermission returns ErrNotFound when the user has no record;
		// resolvers fall back to their defaults in that case.
		GetPermission(ctx context.Context, userId int) (*entity.Permission, error)
		Approve(ctx context.Context, userId int, p *entity.Permission) error
		UpdatePermission(ctx context.Context, userId int, p *entity.Permission) error
		BlacklistToken(ctx context.Context, jti string, expiresAt time.Time) error
		IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
	}

	Files interface {
		List(ctx context.Context, limit int) ([]entity.FileProcessingRecord, error)
		Add(ctx context.Context, rec *entity.FileProcessingRecord) (int, error)
		DeleteOlderThan(ctx context.Context, olderThan time.Time) error
	}

	Outbox interface {
		Add(ctx context.Context, m *entity.MailRecord) (int, error)
		ListUnsent(ctx context.Context) ([]entity.MailRecord, error)
		MarkSent(ctx context.Context, id int) error
	}

	Repository interface {
		Calls() Calls
		Emails() Emails
		Bookings() Bookings
		Tasks() Tasks
		Users() Users
		Files() Files
		Outbox() Outbox
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		Ping(ctx context.Context) error
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// TokenStore keeps short-lived auth artifacts (OTP codes, password-reset
	// tokens) with explicit TTLs.
	TokenStore interface {
		Set(ctx context.Context, kind, email, value string, ttl time.Duration) error
		Get(ctx context.Context, kind, email string) (string, error)
		Delete(ctx context.Context, kind, email string) error
		Ping(ctx context.Context) error
	}
)
