package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/travelops/contact-insights/internal/entity"
)

func TestWindowSQL(t *testing.T) {
	t.Run("unbounded omits the clause", func(t *testing.T) {
		params := map[string]any{}
		frag := windowSQL("date", entity.Window{}, params)
		assert.Empty(t, frag)
		assert.Empty(t, params)
	})

	t.Run("bounded window", func(t *testing.T) {
		params := map[string]any{}
		from := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)
		frag := windowSQL("date", entity.Window{From: from, To: to}, params)
		assert.Equal(t, " AND date >= :from AND date <= :to", frag)
		assert.Equal(t, from, params["from"])
		assert.Equal(t, to, params["to"])
	})
}

func TestScopeSQL(t *testing.T) {
	t.Run("unrestricted contributes nothing", func(t *testing.T) {
		params := map[string]any{}
		assert.Empty(t, scopeSQL("queue_name", entity.Scope{}, params))
		assert.Empty(t, params)
	})

	t.Run("substring and exact clauses", func(t *testing.T) {
		params := map[string]any{}
		sc := entity.Scope{Clauses: []entity.ScopeClause{
			{Value: "Urlaubsguru"},
			{Value: "Urlaub", Exact: true},
		}}
		frag := scopeSQL("queue_name", sc, params)
		assert.Equal(t, " AND (queue_name LIKE :scope0 OR queue_name = :scope1)", frag)
		assert.Equal(t, "%Urlaubsguru%", params["scope0"])
		assert.Equal(t, "Urlaub", params["scope1"])
	})

	t.Run("service partition is case sensitive", func(t *testing.T) {
		params := map[string]any{}
		frag := scopeSQL("queue_name", entity.Scope{Domain: entity.DomainService}, params)
		assert.Equal(t, " AND queue_name LIKE BINARY :domainpat", frag)
		assert.Equal(t, "%Service%", params["domainpat"])
	})

	t.Run("sales partition excludes service rows", func(t *testing.T) {
		params := map[string]any{}
		frag := scopeSQL("customer", entity.Scope{Domain: entity.DomainSales}, params)
		assert.Equal(t, " AND customer NOT LIKE BINARY :domainpat", frag)
	})

	t.Run("clauses and partition combine", func(t *testing.T) {
		params := map[string]any{}
		sc := entity.Scope{
			Clauses: []entity.ScopeClause{{Value: "Bild"}},
			Domain:  entity.DomainSales,
		}
		frag := scopeSQL("queue_name", sc, params)
		assert.Contains(t, frag, "queue_name LIKE :scope0")
		assert.Contains(t, frag, "NOT LIKE BINARY :domainpat")
	})
}
