package reporting

import (
	"strings"

	gerr "github.com/travelops/contact-insights/internal/errors"

	"github.com/travelops/contact-insights/internal/entity"
)

// canonicalCompanies maps permission domain tokens to the display names used
// in the company-tagged columns. "urlaub" matches exactly so it never
// swallows "Urlaubsguru" rows.
var canonicalCompanies = map[string]entity.ScopeClause{
	"5vorflug":    {Value: "5vorflug"},
	"urlaubsguru": {Value: "Urlaubsguru"},
	"bild":        {Value: "Bild"},
	"galeria":     {Value: "Galeria"},
	"adac":        {Value: "ADAC"},
	"urlaub":      {Value: "Urlaub", Exact: true},
}

// companyOrder fixes the iteration order for exports and accessible-company
// listings.
var companyOrder = []string{"5vorflug", "urlaubsguru", "bild", "galeria", "adac", "urlaub"}

// splitCompanies render separate Sales and Service blocks in reports.
var splitCompanies = map[string]bool{
	"5vorflug":    true,
	"urlaubsguru": true,
	"bild":        true,
}

// ScopeForUser derives the visibility predicate for company-tagged tables.
// Admin and employee roles are unrestricted. Customers are scoped by their
// permission domains; unrecognized tokens contribute nothing. A customer
// without a permission record falls back to the legacy own-email rule, built
// through the same clause table so the two paths cannot disagree.
func ScopeForUser(u *entity.User, p *entity.Permission, domain entity.DomainFilter) entity.Scope {
	sc := entity.Scope{Domain: domain}
	if u.Unrestricted() {
		return sc
	}
	if p != nil {
		for _, tok := range p.DomainTokens() {
			if c, ok := canonicalCompanies[tok]; ok {
				sc.Clauses = append(sc.Clauses, c)
			}
		}
		return sc
	}
	sc.Clauses = legacyClausesFromEmail(u.Email)
	return sc
}

// ScopeForCompany narrows the scope to a single requested company token,
// verifying it against the user's accessible set.
func ScopeForCompany(u *entity.User, p *entity.Permission, company string, domain entity.DomainFilter) (entity.Scope, error) {
	company = strings.ToLower(strings.TrimSpace(company))
	if company == "" {
		return ScopeForUser(u, p, domain), nil
	}
	clause, ok := canonicalCompanies[company]
	if !ok {
		return entity.Scope{}, gerr.PermissionDenied(company, AccessibleCompanies(u, p))
	}
	if !u.Unrestricted() && !containsToken(accessibleTokens(u, p), company) {
		return entity.Scope{}, gerr.PermissionDenied(company, AccessibleCompanies(u, p))
	}
	return entity.Scope{Clauses: []entity.ScopeClause{clause}, Domain: domain}, nil
}

// DomainFromParam maps the optional domain query parameter to a filter.
func DomainFromParam(s string) entity.DomainFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "service":
		return entity.DomainService
	case "sales":
		return entity.DomainSales
	default:
		return entity.DomainAll
	}
}

// AccessibleCompanies lists the company tokens the user may query, in fixed
// report order.
func AccessibleCompanies(u *entity.User, p *entity.Permission) []string {
	tokens := accessibleTokens(u, p)
	out := make([]string, 0, len(tokens))
	for _, tok := range companyOrder {
		if containsToken(tokens, tok) {
			out = append(out, tok)
		}
	}
	return out
}

// SplitCompany reports whether the company renders separate Sales and
// Service blocks.
func SplitCompany(token string) bool {
	return splitCompanies[strings.ToLower(token)]
}

// CompanyClause returns the scope clause for a known company token.
func CompanyClause(token string) (entity.ScopeClause, bool) {
	c, ok := canonicalCompanies[strings.ToLower(token)]
	return c, ok
}

// CompanyDisplayName returns the canonical display name for a token.
func CompanyDisplayName(token string) string {
	if c, ok := canonicalCompanies[strings.ToLower(token)]; ok {
		return c.Value
	}
	return token
}

func accessibleTokens(u *entity.User, p *entity.Permission) []string {
	if u.Unrestricted() {
		return companyOrder
	}
	if p != nil {
		var tokens []string
		for _, tok := range p.DomainTokens() {
			if _, ok := canonicalCompanies[tok]; ok {
				tokens = append(tokens, tok)
			}
		}
		return tokens
	}
	var tokens []string
	for _, c := range legacyClausesFromEmail(u.Email) {
		for tok, cc := range canonicalCompanies {
			if cc == c {
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens
}

// legacyClausesFromEmail keys off the user's own email address, the rule the
// permission domains replaced. Kept only as the fallback for users without a
// permission record.
func legacyClausesFromEmail(email string) []entity.ScopeClause {
	email = strings.ToLower(email)
	switch {
	case strings.Contains(email, "urlaubsguru"):
		return []entity.ScopeClause{canonicalCompanies["urlaubsguru"]}
	case strings.Contains(email, "5vorflug"):
		return []entity.ScopeClause{canonicalCompanies["5vorflug"]}
	default:
		return nil
	}
}
