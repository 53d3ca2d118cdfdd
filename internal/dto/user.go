package dto

import "github.com/travelops/contact-insights/internal/entity"

type UserResponse struct {
	Id        int    `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

type PermissionBody struct {
	DateFilter      string `json:"date_filter"`
	Domains         string `json:"domains"`
	CanViewCalls    bool   `json:"can_view_calls"`
	CanViewEmails   bool   `json:"can_view_emails"`
	CanViewBookings bool   `json:"can_view_bookings"`
	CanViewTasks    bool   `json:"can_view_tasks"`
	CanViewFiles    bool   `json:"can_view_files"`
	CanExport       bool   `json:"can_export"`
}

func (b *PermissionBody) ToEntity(userId int) *entity.Permission {
	return &entity.Permission{
		UserId:          userId,
		DateFilter:      b.DateFilter,
		Domains:         b.Domains,
		CanViewCalls:    b.CanViewCalls,
		CanViewEmails:   b.CanViewEmails,
		CanViewBookings: b.CanViewBookings,
		CanViewTasks:    b.CanViewTasks,
		CanViewFiles:    b.CanViewFiles,
		CanExport:       b.CanExport,
	}
}

func NewUsersResponse(users []entity.User) *UsersResponse {
	resp := &UsersResponse{Users: []UserResponse{}}
	for _, u := range users {
		resp.Users = append(resp.Users, UserResponse{
			Id:        u.Id,
			Email:     u.Email,
			Role:      string(u.Role),
			Status:    string(u.Status),
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp
}
