package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/entity"
	gerr "github.com/travelops/contact-insights/internal/errors"
)

type usersStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Users() dependency.Users {
	return &usersStore{MYSQLStore: ms}
}

func (s *usersStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, role, status, is_active, created_at
		FROM user
		WHERE email = :email`
	u, err := QueryNamedOne[entity.User](ctx, s.DB(), query, map[string]any{"email": email})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (s *usersStore) GetById(ctx context.Context, id int) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, role, status, is_active, created_at
		FROM user
		WHERE id = :id`
	u, err := QueryNamedOne[entity.User](ctx, s.DB(), query, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (s *usersStore) List(ctx context.Context) ([]entity.User, error) {
	query := `
		SELECT id, email, password_hash, role, status, is_active, created_at
		FROM user
		ORDER BY created_at DESC`
	users, err := QueryListNamed[entity.User](ctx, s.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *usersStore) AddUser(ctx context.Context, email, pwHash string, role entity.UserRole) (int, error) {
	query := `
		INSERT INTO user (email, password_hash, role, status, is_active)
		VALUES (:email, :hash, :role, :status, 0)`
	id, err := ExecNamedLastId(ctx, s.DB(), query, map[string]any{
		"email":  email,
		"hash":   pwHash,
		"role":   role,
		"status": entity.UserStatusPending,
	})
	if err != nil {
		return 0, fmt.Errorf("add user: %w", err)
	}
	return id, nil
}

func (s *usersStore) UpdatePassword(ctx context.Context, email, pwHash string) error {
	query := `UPDATE user SET password_hash = :hash WHERE email = :email`
	if err := ExecNamed(ctx, s.DB(), query, map[string]any{"email": email, "hash": pwHash}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// GetPermission returns the user's permission record or gerr.ErrNotFound.
// Callers treat an absent record per the resolver defaults, not as a
// request failure.
func (s *usersStore) GetPermission(ctx context.Context, userId int) (*entity.Permission, error) {
	query := `
		SELECT id, user_id, date_filter, domains,
			can_view_calls, can_view_emails, can_view_bookings,
			can_view_tasks, can_view_files, can_export
		FROM permission
		WHERE user_id = :userId`
	p, err := QueryNamedOne[entity.Permission](ctx, s.DB(), query, map[string]any{"userId": userId})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return &p, nil
}

// Approve activates a pending user and creates its permission record in one
// transaction; every active user has at most one permission row.
func (s *usersStore) Approve(ctx context.Context, userId int, p *entity.Permission) error {
	return s.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		query := `UPDATE user SET status = :status, is_active = 1 WHERE id = :userId`
		err := ExecNamed(ctx, rep.DB(), query, map[string]any{
			"userId": userId,
			"status": entity.UserStatusApproved,
		})
		if err != nil {
			return fmt.Errorf("approve user: %w", err)
		}

		query = `
			INSERT INTO permission (user_id, date_filter, domains,
				can_view_calls, can_view_emails, can_view_bookings,
				can_view_tasks, can_view_files, can_export)
			VALUES (:userId, :dateFilter, :domains,
				:calls, :emails, :bookings, :tasks, :files, :export)`
		err = ExecNamed(ctx, rep.DB(), query, map[string]any{
			"userId":     userId,
			"dateFilter": p.DateFilter,
			"domains":    p.Domains,
			"calls":      p.CanViewCalls,
			"emails":     p.CanViewEmails,
			"bookings":   p.CanViewBookings,
			"tasks":      p.CanViewTasks,
			"files":      p.CanViewFiles,
			"export":     p.CanExport,
		})
		if err != nil {
			return fmt.Errorf("insert permission: %w", err)
		}
		return nil
	})
}

func (s *usersStore) UpdatePermission(ctx context.Context, userId int, p *entity.Permission) error {
	query := `
		UPDATE permission SET
			date_filter = :dateFilter,
			domains = :domains,
			can_view_calls = :calls,
			can_view_emails = :emails,
			can_view_bookings = :bookings,
			can_view_tasks = :tasks,
			can_view_files = :files,
			can_export = :export
		WHERE user_id = :userId`
	err := ExecNamed(ctx, s.DB(), query, map[string]any{
		"userId":     userId,
		"dateFilter": p.DateFilter,
		"domains":    p.Domains,
		"calls":      p.CanViewCalls,
		"emails":     p.CanViewEmails,
		"bookings":   p.CanViewBookings,
		"tasks":      p.CanViewTasks,
		"files":      p.CanViewFiles,
		"export":     p.CanExport,
	})
	if err != nil {
		return fmt.Errorf("update permission: %w", err)
	}
	return nil
}

// BlacklistToken stores a revoked JWT id until its natural expiry.
func (s *usersStore) BlacklistToken(ctx context.Context, jti string, expiresAt time.Time) error {
	query := `
		INSERT INTO blacklisted_token (jti, expires_at)
		VALUES (:jti, :expiresAt)
		ON DUPLICATE KEY UPDATE expires_at = :expiresAt`
	if err := ExecNamed(ctx, s.DB(), query, map[string]any{"jti": jti, "expiresAt": expiresAt}); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (s *usersStore) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	query := `SELECT COUNT(*) FROM blacklisted_token WHERE jti = :jti AND expires_at > NOW()`
	n, err := QueryCountNamed(ctx, s.DB(), query, map[string]any{"jti": jti})
	if err != nil {
		return false, fmt.Errorf("is token blacklisted: %w", err)
	}
	return n > 0, nil
}
