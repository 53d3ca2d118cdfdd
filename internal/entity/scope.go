package entity

// DomainFilter selects the Sales/Service partition of a company. The split is
// a substring test on the company-tagged column: rows containing the
// case-sensitive token "Service" are Service, all others Sales.
type DomainFilter int

const (
	DomainAll DomainFilter = iota
	DomainSales
	DomainService
)

// ScopeClause narrows company-tagged rows. Exact clauses match the column
// value verbatim, others as a substring.
type ScopeClause struct {
	Value string
	Exact bool
}

// Scope is the visibility predicate applied to company-tagged tables.
// No clauses means the company dimension is unrestricted.
type Scope struct {
	Clauses []ScopeClause
	Domain  DomainFilter
}

// Unrestricted reports whether the scope filters nothing.
func (s Scope) Unrestricted() bool {
	return len(s.Clauses) == 0 && s.Domain == DomainAll
}
