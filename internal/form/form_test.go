package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequestValidate(t *testing.T) {
	ok := &LoginRequest{Email: "user@example.com", Password: "pw"}
	assert.NoError(t, ok.Validate())

	bad := &LoginRequest{Email: "not-an-email", Password: "pw"}
	assert.Error(t, bad.Validate())

	empty := &LoginRequest{}
	assert.Error(t, empty.Validate())
}

func TestKPIRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     KPIRequest
		wantErr bool
	}{
		{name: "empty", req: KPIRequest{}},
		{name: "token", req: KPIRequest{FilterType: "last_week"}},
		{name: "explicit dates", req: KPIRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"}},
		{name: "domain sales", req: KPIRequest{Domain: "sales"}},
		{name: "unknown token", req: KPIRequest{FilterType: "last_decade"}, wantErr: true},
		{name: "bad date", req: KPIRequest{StartDate: "01.01.2024"}, wantErr: true},
		{name: "bad domain", req: KPIRequest{Domain: "support"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdatePermissionRequestValidate(t *testing.T) {
	ok := &UpdatePermissionRequest{}
	ok.DateFilter = "yesterday, last_week"
	assert.NoError(t, ok.Validate())

	bad := &UpdatePermissionRequest{}
	bad.DateFilter = "yesterday, next_week"
	assert.Error(t, bad.Validate())
}
