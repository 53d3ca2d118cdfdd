package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(time.Second, 3)

	// First 3 requests should succeed
	for i := 0; i < 3; i++ {
		if !limiter.Allow("test-key") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 4th request should be blocked
	if limiter.Allow("test-key") {
		t.Error("4th request should be blocked")
	}

	// Wait for window to expire
	time.Sleep(1100 * time.Millisecond)

	// Should be allowed again
	if !limiter.Allow("test-key") {
		t.Error("Request after window expiry should be allowed")
	}
}

func TestLimiter_GetRemaining(t *testing.T) {
	limiter := NewLimiter(time.Second, 5)

	if remaining := limiter.GetRemaining("test-key"); remaining != 5 {
		t.Errorf("Expected 5 remaining, got %d", remaining)
	}

	limiter.Allow("test-key")
	limiter.Allow("test-key")

	if remaining := limiter.GetRemaining("test-key"); remaining != 3 {
		t.Errorf("Expected 3 remaining, got %d", remaining)
	}
}

func TestAuthLimiter_CheckLogin(t *testing.T) {
	limiter := NewAuthLimiter()

	// Same email from different IPs hits the email limit
	for i := 0; i < 5; i++ {
		if err := limiter.CheckLogin("10.0.0.1", "test@example.com"); err != nil {
			t.Errorf("Login %d should succeed: %v", i+1, err)
		}
	}
	if err := limiter.CheckLogin("10.0.0.2", "test@example.com"); err == nil {
		t.Error("6th login for same email should be blocked")
	}

	// Different account from a fresh IP is unaffected
	if err := limiter.CheckLogin("10.0.0.3", "other@example.com"); err != nil {
		t.Errorf("Login for different email should succeed: %v", err)
	}
}

func TestAuthLimiter_CheckOTPRequest(t *testing.T) {
	limiter := NewAuthLimiter()

	for i := 0; i < 5; i++ {
		if err := limiter.CheckOTPRequest("10.0.0.1", "test@example.com"); err != nil {
			t.Errorf("OTP request %d should succeed: %v", i+1, err)
		}
	}
	if err := limiter.CheckOTPRequest("10.0.0.1", "test@example.com"); err == nil {
		t.Error("6th OTP request for same email should be blocked")
	}
}
