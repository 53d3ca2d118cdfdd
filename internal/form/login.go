package form

import (
	"fmt"

	"github.com/asaskevich/govalidator"
	v "github.com/go-ozzo/ozzo-validation/v4"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Email, v.Required, v.By(validEmail)),
		v.Field(&r.Password, v.Required, v.Length(1, 128)),
	)
}

func validEmail(value interface{}) error {
	s, _ := value.(string)
	if !govalidator.IsEmail(s) {
		return fmt.Errorf("must be a valid email address")
	}
	return nil
}
