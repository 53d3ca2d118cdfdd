package form

import (
	"fmt"
	"strings"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/travelops/contact-insights/internal/dto"
)

type UpdatePermissionRequest struct {
	dto.PermissionBody
}

func (r *UpdatePermissionRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.DateFilter, v.By(validFilterList)),
		v.Field(&r.Domains, v.Length(0, 255)),
	)
}

// validFilterList accepts a comma-separated list of known filter tokens.
func validFilterList(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if err := validFilterToken(token); err != nil {
			return fmt.Errorf("unknown filter token %q", token)
		}
	}
	return nil
}
