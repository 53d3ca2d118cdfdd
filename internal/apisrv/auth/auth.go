package auth

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/travelops/contact-insights/internal/auth/jwt"
	"github.com/travelops/contact-insights/internal/auth/pwhash"
	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/dto"
	"github.com/travelops/contact-insights/internal/entity"
	gerr "github.com/travelops/contact-insights/internal/errors"
	"github.com/travelops/contact-insights/internal/form"
	"github.com/travelops/contact-insights/internal/middleware"
	"github.com/travelops/contact-insights/internal/ratelimit"
	"github.com/travelops/contact-insights/internal/tokenstore"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret                string `mapstructure:"jwt_secret"`
	JWTTTL                   string `mapstructure:"jwt_ttl"`
	OTPTTL                   string `mapstructure:"otp_ttl"`
	ResetTTL                 string `mapstructure:"reset_ttl"`
	PasswordHasherSaltSize   int    `mapstructure:"password_hasher_salt_size"`
	PasswordHasherIterations int    `mapstructure:"password_hasher_iterations"`
}

// Server implements the auth surface: login, logout, OTP and password reset.
type Server struct {
	repo     dependency.Repository
	tokens   dependency.TokenStore
	limiter  *ratelimit.AuthLimiter
	pwhash   *pwhash.PasswordHasher
	JwtAuth  *jwtauth.JWTAuth
	jwtTTL   time.Duration
	otpTTL   time.Duration
	resetTTL time.Duration
}

// New creates a new auth server.
func New(c *Config, repo dependency.Repository, tokens dependency.TokenStore) (*Server, error) {
	ph, err := pwhash.New(c.PasswordHasherSaltSize, c.PasswordHasherIterations)
	if err != nil {
		return nil, err
	}

	jwtTTL, err := time.ParseDuration(c.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("parse jwt ttl: %w", err)
	}
	otpTTL, err := time.ParseDuration(c.OTPTTL)
	if err != nil {
		return nil, fmt.Errorf("parse otp ttl: %w", err)
	}
	resetTTL, err := time.ParseDuration(c.ResetTTL)
	if err != nil {
		return nil, fmt.Errorf("parse reset ttl: %w", err)
	}

	return &Server{
		repo:     repo,
		tokens:   tokens,
		limiter:  ratelimit.NewAuthLimiter(),
		pwhash:   ph,
		JwtAuth:  jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:   jwtTTL,
		otpTTL:   otpTTL,
		resetTTL: resetTTL,
	}, nil
}

// Login validates credentials and returns a signed token.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req form.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.ToLower(req.Email)

	if err := s.limiter.CheckLogin(middleware.GetClientIP(r.Context()), email); err != nil {
		respondError(w, http.StatusTooManyRequests, err.Error())
		return
	}

	u, err := s.repo.Users().GetByEmail(r.Context(), email)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !u.IsActive || u.Status != entity.UserStatusApproved {
		respondError(w, http.StatusForbidden, "account not approved")
		return
	}
	if err := s.pwhash.Validate(req.Password, u.PasswordHash); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, _, err := jwt.NewToken(s.JwtAuth, s.jwtTTL, u.Email, u.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "token issue failed")
		return
	}

	respondJSON(w, http.StatusOK, &dto.LoginResponse{AuthToken: token, Role: string(u.Role)})
}

// Logout blacklists the presented token until its natural expiry.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err := s.repo.Users().BlacklistToken(r.Context(), claims.JTI, claims.ExpiresAt); err != nil {
		respondError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	respondJSON(w, http.StatusOK, &dto.OTPRequestResponse{Message: "logged out"})
}

// RequestOTP generates a one-time code and queues a notification mail. The
// response does not reveal whether the account exists.
func (s *Server) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req form.OTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.ToLower(req.Email)

	if err := s.limiter.CheckOTPRequest(middleware.GetClientIP(r.Context()), email); err != nil {
		respondError(w, http.StatusTooManyRequests, err.Error())
		return
	}

	resp := &dto.OTPRequestResponse{Message: "if the account exists, a code has been sent"}

	if _, err := s.repo.Users().GetByEmail(r.Context(), email); err != nil {
		respondJSON(w, http.StatusOK, resp)
		return
	}

	code, err := otpCode()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "code generation failed")
		return
	}
	if err := s.tokens.Set(r.Context(), tokenstore.KindOTP, email, code, s.otpTTL); err != nil {
		respondError(w, http.StatusInternalServerError, "code storage failed")
		return
	}

	_, err = s.repo.Outbox().Add(r.Context(), &entity.MailRecord{
		Recipient: email,
		Subject:   "Your verification code",
		Body:      fmt.Sprintf("Your verification code is %s. It expires in %s.", code, s.otpTTL),
	})
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "queue otp mail failed",
			slog.String("err", err.Error()),
		)
	}

	respondJSON(w, http.StatusOK, resp)
}

// VerifyOTP exchanges a valid code for a single-use reset token.
func (s *Server) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req form.OTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.ToLower(req.Email)

	stored, err := s.tokens.Get(r.Context(), tokenstore.KindOTP, email)
	if err != nil || stored != req.Code {
		respondError(w, http.StatusUnauthorized, "invalid or expired code")
		return
	}
	_ = s.tokens.Delete(r.Context(), tokenstore.KindOTP, email)

	reset, err := resetToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	if err := s.tokens.Set(r.Context(), tokenstore.KindReset, email, reset, s.resetTTL); err != nil {
		respondError(w, http.StatusInternalServerError, "token storage failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"reset_token": reset})
}

// ResetPassword consumes the reset token and stores the new password hash.
func (s *Server) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req form.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.ToLower(req.Email)

	if err := s.limiter.CheckPasswordReset(middleware.GetClientIP(r.Context())); err != nil {
		respondError(w, http.StatusTooManyRequests, err.Error())
		return
	}

	stored, err := s.tokens.Get(r.Context(), tokenstore.KindReset, email)
	if err != nil || stored != req.ResetToken {
		respondError(w, http.StatusUnauthorized, "invalid or expired reset token")
		return
	}

	hash, err := s.pwhash.HashPassword(req.NewPassword)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "password hashing failed")
		return
	}
	if err := s.repo.Users().UpdatePassword(r.Context(), email, hash); err != nil {
		respondError(w, http.StatusInternalServerError, "password update failed")
		return
	}
	_ = s.tokens.Delete(r.Context(), tokenstore.KindReset, email)

	respondJSON(w, http.StatusOK, &dto.OTPRequestResponse{Message: "password updated"})
}

// WithAuth verifies the bearer token, rejects blacklisted ids and stores the
// claims in the request context.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims, err := jwt.VerifyToken(s.JwtAuth, token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		blacklisted, err := s.repo.Users().IsTokenBlacklisted(r.Context(), claims.JTI)
		if err != nil || blacklisted {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithAdmin requires an authenticated admin. It runs inside WithAuth.
func (s *Server) WithAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || claims.Role != entity.UserRoleAdmin {
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext returns the verified claims or nil.
func ClaimsFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(claimsKey).(*jwt.Claims)
	return claims
}

// UserFromContext loads the user record behind the verified claims.
func (s *Server) UserFromContext(ctx context.Context) (*entity.User, error) {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return nil, gerr.ErrUnauthorized
	}
	u, err := s.repo.Users().GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gerr.ErrNotFound) {
			return nil, gerr.ErrUnauthorized
		}
		return nil, err
	}
	return u, nil
}

func otpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func resetToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", buf), nil
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, &dto.ErrorResponse{Error: msg})
}
