package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelops/contact-insights/internal/entity"
)

func TestToken(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	tok, jti, err := NewToken(jwtAuth, time.Hour, "user@example.com", entity.UserRoleCustomer)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := VerifyToken(jwtAuth, tok)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", claims.Subject)
	assert.Equal(t, entity.UserRoleCustomer, claims.Role)
	assert.Equal(t, jti, claims.JTI)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	issuer := jwtauth.New("HS256", []byte("secret"), nil)
	verifier := jwtauth.New("HS256", []byte("other"), nil)

	tok, _, err := NewToken(issuer, time.Hour, "user@example.com", entity.UserRoleAdmin)
	require.NoError(t, err)

	_, err = VerifyToken(verifier, tok)
	assert.Error(t, err)
}
