package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limiter implements a simple in-memory sliding window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
	}
	go l.cleanup()
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// GetRemaining returns the number of remaining requests for the given key
func (l *Limiter) GetRemaining(key string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		return l.max
	}

	remaining := l.max - c.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, c := range l.counters {
			if now.After(c.expiresAt) {
				delete(l.counters, key)
			}
		}
		l.mu.Unlock()
	}
}

// AuthLimiter bundles the per-operation limiters for the auth surface.
type AuthLimiter struct {
	limiters map[string]*Limiter
	mu       sync.RWMutex
}

// NewAuthLimiter creates an auth limiter with default limits.
func NewAuthLimiter() *AuthLimiter {
	return &AuthLimiter{
		limiters: map[string]*Limiter{
			"ip_login":    NewLimiter(time.Minute, 10),
			"email_login": NewLimiter(time.Minute, 5),
			"ip_otp":      NewLimiter(time.Hour, 10),
			"email_otp":   NewLimiter(time.Hour, 5),
			"ip_reset":    NewLimiter(time.Hour, 10),
		},
	}
}

// CheckLogin verifies if a login attempt is allowed from the given IP and email.
func (a *AuthLimiter) CheckLogin(ip, email string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.limiters["ip_login"].Allow(ip) {
		return fmt.Errorf("too many login attempts from this IP address, please try again later")
	}
	if email != "" && !a.limiters["email_login"].Allow(email) {
		return fmt.Errorf("too many login attempts for this account, please try again later")
	}
	return nil
}

// CheckOTPRequest verifies if an OTP may be requested from the given IP and email.
func (a *AuthLimiter) CheckOTPRequest(ip, email string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.limiters["ip_otp"].Allow(ip) {
		return fmt.Errorf("too many code requests from this IP address, please try again later")
	}
	if email != "" && !a.limiters["email_otp"].Allow(email) {
		return fmt.Errorf("too many code requests for this account, please try again later")
	}
	return nil
}

// CheckPasswordReset verifies if a password reset is allowed from the given IP.
func (a *AuthLimiter) CheckPasswordReset(ip string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.limiters["ip_reset"].Allow(ip) {
		return fmt.Errorf("too many reset attempts from this IP address, please try again later")
	}
	return nil
}
