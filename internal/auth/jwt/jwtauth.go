package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/travelops/contact-insights/internal/entity"
)

// Claims is the decoded payload of a verified dashboard token.
type Claims struct {
	Subject   string
	Role      entity.UserRole
	JTI       string
	ExpiresAt time.Time
}

// NewToken creates a JWT with the user email as subject and a random token
// id. The id lands in the blacklist on logout.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, subject string, role entity.UserRole) (string, string, error) {
	jti := uuid.NewString()
	claims := map[string]interface{}{
		"exp":  time.Now().Add(ttl).Unix(),
		"sub":  subject,
		"role": string(role),
		"jti":  jti,
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return "", "", err
	}
	return ts, jti, nil
}

// VerifyToken validates the signature and expiry and returns the claims.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (*Claims, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return nil, err
	}

	role, _ := t.Get("role")
	roleStr, ok := role.(string)
	if !ok {
		return nil, fmt.Errorf("missing role claim")
	}

	return &Claims{
		Subject:   t.Subject(),
		Role:      entity.UserRole(roleStr),
		JTI:       t.JwtID(),
		ExpiresAt: t.Expiration(),
	}, nil
}
