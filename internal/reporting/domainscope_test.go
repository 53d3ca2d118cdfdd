package reporting

import (
	"testing"

	gerr "github.com/travelops/contact-insights/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelops/contact-insights/internal/entity"
)

func TestScopeForUser(t *testing.T) {
	t.Run("admin is unrestricted regardless of domains", func(t *testing.T) {
		u := &entity.User{Role: entity.UserRoleAdmin}
		p := &entity.Permission{Domains: "urlaubsguru"}
		sc := ScopeForUser(u, p, entity.DomainAll)
		assert.True(t, sc.Unrestricted())
	})

	t.Run("employee is unrestricted", func(t *testing.T) {
		u := &entity.User{Role: entity.UserRoleEmployee}
		sc := ScopeForUser(u, nil, entity.DomainAll)
		assert.True(t, sc.Unrestricted())
	})

	t.Run("customer scoped to permission domains", func(t *testing.T) {
		u := &entity.User{Role: entity.UserRoleCustomer}
		p := &entity.Permission{Domains: "urlaubsguru, adac"}
		sc := ScopeForUser(u, p, entity.DomainAll)
		require.Len(t, sc.Clauses, 2)
		assert.Equal(t, entity.ScopeClause{Value: "Urlaubsguru"}, sc.Clauses[0])
		assert.Equal(t, entity.ScopeClause{Value: "ADAC"}, sc.Clauses[1])
	})

	t.Run("urlaub matches exactly", func(t *testing.T) {
		u := &entity.User{Role: entity.UserRoleCustomer}
		p := &entity.Permission{Domains: "urlaub"}
		sc := ScopeForUser(u, p, entity.DomainAll)
		require.Len(t, sc.Clauses, 1)
		assert.Equal(t, entity.ScopeClause{Value: "Urlaub", Exact: true}, sc.Clauses[0])
	})

	t.Run("unrecognized tokens are ignored", func(t *testing.T) {
		u := &entity.User{Role: entity.UserRoleCustomer}
		p := &entity.Permission{Domains: "urlaubsguru, wat"}
		sc := ScopeForUser(u, p, entity.DomainAll)
		assert.Len(t, sc.Clauses, 1)
	})

	t.Run("legacy email fallback without permission record", func(t *testing.T) {
		u := &entity.User{Role: entity.UserRoleCustomer, Email: "report@urlaubsguru.de"}
		sc := ScopeForUser(u, nil, entity.DomainAll)
		require.Len(t, sc.Clauses, 1)
		assert.Equal(t, "Urlaubsguru", sc.Clauses[0].Value)

		u = &entity.User{Role: entity.UserRoleCustomer, Email: "kpi@5vorflug.de"}
		sc = ScopeForUser(u, nil, entity.DomainAll)
		require.Len(t, sc.Clauses, 1)
		assert.Equal(t, "5vorflug", sc.Clauses[0].Value)

		u = &entity.User{Role: entity.UserRoleCustomer, Email: "someone@else.de"}
		sc = ScopeForUser(u, nil, entity.DomainAll)
		assert.Empty(t, sc.Clauses)
	})

	t.Run("domain filter is carried", func(t *testing.T) {
		u := &entity.User{Role: entity.UserRoleAdmin}
		sc := ScopeForUser(u, nil, entity.DomainService)
		assert.Equal(t, entity.DomainService, sc.Domain)
		assert.False(t, sc.Unrestricted())
	})
}

func TestScopeForCompany(t *testing.T) {
	admin := &entity.User{Role: entity.UserRoleAdmin}
	customer := &entity.User{Role: entity.UserRoleCustomer}

	t.Run("admin may pick any company", func(t *testing.T) {
		sc, err := ScopeForCompany(admin, nil, "bild", entity.DomainSales)
		require.NoError(t, err)
		require.Len(t, sc.Clauses, 1)
		assert.Equal(t, "Bild", sc.Clauses[0].Value)
		assert.Equal(t, entity.DomainSales, sc.Domain)
	})

	t.Run("customer outside accessible set is denied", func(t *testing.T) {
		p := &entity.Permission{Domains: "adac"}
		_, err := ScopeForCompany(customer, p, "bild", entity.DomainAll)
		require.Error(t, err)
		pd, ok := gerr.IsPermissionDenied(err)
		require.True(t, ok)
		assert.Equal(t, []string{"adac"}, pd.Allowed)
	})

	t.Run("unknown company is denied", func(t *testing.T) {
		_, err := ScopeForCompany(admin, nil, "tui", entity.DomainAll)
		assert.Error(t, err)
	})

	t.Run("empty company falls back to user scope", func(t *testing.T) {
		sc, err := ScopeForCompany(admin, nil, "", entity.DomainAll)
		require.NoError(t, err)
		assert.True(t, sc.Unrestricted())
	})
}

func TestAccessibleCompanies(t *testing.T) {
	admin := &entity.User{Role: entity.UserRoleAdmin}
	assert.Equal(t, []string{"5vorflug", "urlaubsguru", "bild", "galeria", "adac", "urlaub"}, AccessibleCompanies(admin, nil))

	customer := &entity.User{Role: entity.UserRoleCustomer}
	p := &entity.Permission{Domains: "adac,urlaubsguru"}
	assert.Equal(t, []string{"urlaubsguru", "adac"}, AccessibleCompanies(customer, p))
}

func TestSplitCompany(t *testing.T) {
	assert.True(t, SplitCompany("5vorflug"))
	assert.True(t, SplitCompany("urlaubsguru"))
	assert.True(t, SplitCompany("bild"))
	assert.False(t, SplitCompany("adac"))
	assert.False(t, SplitCompany("galeria"))
}

func TestDomainFromParam(t *testing.T) {
	assert.Equal(t, entity.DomainService, DomainFromParam("service"))
	assert.Equal(t, entity.DomainSales, DomainFromParam("Sales"))
	assert.Equal(t, entity.DomainAll, DomainFromParam(""))
	assert.Equal(t, entity.DomainAll, DomainFromParam("everything"))
}
