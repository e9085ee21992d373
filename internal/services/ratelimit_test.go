package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_GetLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2, testLogger())

	l1 := limiter.GetLimiter("192.168.1.1")
	l2 := limiter.GetLimiter("192.168.1.1")
	l3 := limiter.GetLimiter("192.168.1.2")

	assert.Same(t, l1, l2)
	assert.NotSame(t, l1, l3)
}

func TestIPRateLimiter_Burst(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2, testLogger())
	l := limiter.GetLimiter("10.0.0.1")

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow()) // burst of 2 exhausted

	// Another IP has its own bucket.
	assert.True(t, limiter.GetLimiter("10.0.0.2").Allow())
}
