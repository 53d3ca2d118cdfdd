package entity

import "strings"

// Permission is the per-user capability record created on approval. Every
// active user has at most one row. DateFilter and Domains are comma-separated
// token lists; an absent flag implies denial.
type Permission struct {
	Id              int    `db:"id"`
	UserId          int    `db:"user_id"`
	DateFilter      string `db:"date_filter"`
	Domains         string `db:"domains"`
	CanViewCalls    bool   `db:"can_view_calls"`
	CanViewEmails   bool   `db:"can_view_emails"`
	CanViewBookings bool   `db:"can_view_bookings"`
	CanViewTasks    bool   `db:"can_view_tasks"`
	CanViewFiles    bool   `db:"can_view_files"`
	CanExport       bool   `db:"can_export"`
}

// AllowedFilters returns the permitted date-filter tokens. An empty list
// means the record carries no restriction.
func (p *Permission) AllowedFilters() []string {
	return splitTokens(p.DateFilter)
}

// DomainTokens returns the permitted company tokens, lowercased.
func (p *Permission) DomainTokens() []string {
	return splitTokens(p.Domains)
}

func splitTokens(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
