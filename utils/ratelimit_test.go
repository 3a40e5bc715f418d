package utils

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("client") {
			t.Fatalf("request %d must be allowed", i+1)
		}
	}
	if rl.Allow("client") {
		t.Error("request over the limit must be rejected")
	}

	// Лимиты считаются отдельно по ключам
	if !rl.Allow("other") {
		t.Error("different key must have its own limit")
	}
}

func TestRateLimiterRemaining(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	rl.Allow("client")
	rl.Allow("client")

	if got := rl.Remaining("client"); got != 3 {
		t.Errorf("Remaining = %d, want 3", got)
	}
}

func TestRateLimiterReset(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	rl.Allow("client")
	if rl.Allow("client") {
		t.Fatal("second request must be rejected")
	}

	rl.Reset("client")
	if !rl.Allow("client") {
		t.Error("request after reset must be allowed")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	rl.Allow("client")
	time.Sleep(20 * time.Millisecond)

	if !rl.Allow("client") {
		t.Error("request after window expiry must be allowed")
	}
}
