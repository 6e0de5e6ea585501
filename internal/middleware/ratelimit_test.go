package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    5,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 5; i++ {
		if !rl.Allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 3; i++ {
		rl.Allow("test-ip")
	}

	if rl.Allow("test-ip") {
		t.Fatal("4th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	rl.Allow("ip-a")
	rl.Allow("ip-a")

	// ip-a is exhausted
	if rl.Allow("ip-a") {
		t.Fatal("ip-a should be blocked")
	}

	// ip-b should still be allowed
	if !rl.Allow("ip-b") {
		t.Fatal("ip-b should be allowed (independent key)")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: 50 * time.Millisecond,
		KeyFn:  KeyByIP,
	})

	rl.Allow("test")
	rl.Allow("test")

	if rl.Allow("test") {
		t.Fatal("should be blocked within window")
	}

	// Wait for window to expire
	time.Sleep(60 * time.Millisecond)

	if !rl.Allow("test") {
		t.Fatal("should be allowed after window reset")
	}
}

func TestRateLimiter_InteractionConfig(t *testing.T) {
	rl := NewInteractionRateLimiter()
	for i := 0; i < 60; i++ {
		if !rl.Allow("user:abc123") {
			t.Fatalf("interaction request %d should be allowed (max 60)", i+1)
		}
	}
	if rl.Allow("user:abc123") {
		t.Fatal("61st interaction should be blocked")
	}
}

func TestRateLimiter_PostVideoConfig(t *testing.T) {
	rl := NewPostVideoRateLimiter()
	for i := 0; i < 10; i++ {
		if !rl.Allow("user:abc123") {
			t.Fatalf("post request %d should be allowed (max 10)", i+1)
		}
	}
	if rl.Allow("user:abc123") {
		t.Fatal("11th post should be blocked")
	}
}

func TestRateLimiter_EngagementConfig(t *testing.T) {
	rl := NewEngagementRateLimiter()
	for i := 0; i < 30; i++ {
		if !rl.Allow("user:abc123") {
			t.Fatalf("engagement request %d should be allowed (max 30)", i+1)
		}
	}
	if rl.Allow("user:abc123") {
		t.Fatal("31st engagement request should be blocked")
	}
}

func TestRateLimiter_FeedConfig(t *testing.T) {
	rl := NewFeedRateLimiter()
	for i := 0; i < 120; i++ {
		if !rl.Allow("ip:127.0.0.1") {
			t.Fatalf("feed request %d should be allowed (max 120)", i+1)
		}
	}
	if rl.Allow("ip:127.0.0.1") {
		t.Fatal("121st feed request should be blocked")
	}
}
