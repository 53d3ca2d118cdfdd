package dto

type LoginResponse struct {
	AuthToken string `json:"auth_token"`
	Role      string `json:"role"`
}

type OTPRequestResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error          string   `json:"error"`
	AllowedFilters []string `json:"allowed_filters,omitempty"`
}
