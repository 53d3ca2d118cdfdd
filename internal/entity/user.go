package entity

import "time"

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleEmployee UserRole = "employee"
	UserRoleCustomer UserRole = "customer"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

type User struct {
	Id           int        `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         UserRole   `db:"role"`
	Status       UserStatus `db:"status"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
}

// Unrestricted reports whether the user sees all companies regardless of
// the permission record.
func (u *User) Unrestricted() bool {
	return u.Role == UserRoleAdmin || u.Role == UserRoleEmployee
}
