package store

import (
	"fmt"
	"strings"

	"github.com/travelops/contact-insights/internal/entity"
)

// windowSQL appends date bounds to params and returns the predicate
// fragment. An unbounded window contributes nothing: for the "all" filter
// the date clause is omitted entirely rather than passed as a degenerate
// range.
func windowSQL(col string, w entity.Window, params map[string]any) string {
	if w.Unbounded() {
		return ""
	}
	params["from"] = w.From
	params["to"] = w.To
	return fmt.Sprintf(" AND %s >= :from AND %s <= :to", col, col)
}

// scopeSQL builds the company/domain predicate over a company-tagged text
// column. Company clauses OR together; the Sales/Service partition is a
// BINARY LIKE so the "Service" token stays case-sensitive.
func scopeSQL(col string, sc entity.Scope, params map[string]any) string {
	var b strings.Builder
	if len(sc.Clauses) > 0 {
		parts := make([]string, 0, len(sc.Clauses))
		for i, c := range sc.Clauses {
			key := fmt.Sprintf("scope%d", i)
			if c.Exact {
				parts = append(parts, fmt.Sprintf("%s = :%s", col, key))
				params[key] = c.Value
			} else {
				parts = append(parts, fmt.Sprintf("%s LIKE :%s", col, key))
				params[key] = "%" + c.Value + "%"
			}
		}
		b.WriteString(" AND (" + strings.Join(parts, " OR ") + ")")
	}
	switch sc.Domain {
	case entity.DomainService:
		b.WriteString(fmt.Sprintf(" AND %s LIKE BINARY :domainpat", col))
		params["domainpat"] = "%Service%"
	case entity.DomainSales:
		b.WriteString(fmt.Sprintf(" AND %s NOT LIKE BINARY :domainpat", col))
		params["domainpat"] = "%Service%"
	}
	return b.String()
}
