package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowLimiter(t *testing.T) {
	rl := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("10.0.0.1")
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, retryAfter := rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, retryAfter)

	// A different client has its own window.
	allowed, _ = rl.Allow("10.0.0.2")
	assert.True(t, allowed)
}

func TestFixedWindowLimiterResets(t *testing.T) {
	rl := NewFixedWindowLimiter(1, 50*time.Millisecond)

	allowed, _ := rl.Allow("10.0.0.1")
	assert.True(t, allowed)

	allowed, _ = rl.Allow("10.0.0.1")
	assert.False(t, allowed)

	time.Sleep(80 * time.Millisecond)

	allowed, _ = rl.Allow("10.0.0.1")
	assert.True(t, allowed)
}
