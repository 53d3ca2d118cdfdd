package form

import (
	"fmt"
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/travelops/contact-insights/internal/reporting"
)

// KPIRequest carries the shared query parameters of the dashboard endpoints.
// Either FilterType or the explicit date pair is set, not both; the resolver
// prefers explicit dates when present.
type KPIRequest struct {
	FilterType string
	StartDate  string
	EndDate    string
	Company    string
	Domain     string
}

func (r *KPIRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.FilterType, v.By(validFilterToken)),
		v.Field(&r.StartDate, v.By(validDate)),
		v.Field(&r.EndDate, v.By(validDate)),
		v.Field(&r.Domain, v.In("", "sales", "service")),
	)
}

func validFilterToken(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	for _, f := range reporting.AllFilters {
		if s == f {
			return nil
		}
	}
	return fmt.Errorf("unknown filter token %q", s)
}

func validDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("must be a date in format 2006-01-02")
	}
	return nil
}
