package form

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
)

type OTPRequest struct {
	Email string `json:"email"`
}

func (r *OTPRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Email, v.Required, v.By(validEmail)),
	)
}

type OTPVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r *OTPVerifyRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Email, v.Required, v.By(validEmail)),
		v.Field(&r.Code, v.Required, v.Length(4, 8)),
	)
}

type PasswordResetRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

func (r *PasswordResetRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Email, v.Required, v.By(validEmail)),
		v.Field(&r.ResetToken, v.Required),
		v.Field(&r.NewPassword, v.Required, v.Length(8, 128)),
	)
}
