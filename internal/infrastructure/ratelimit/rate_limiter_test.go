package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Hour)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 1, 10*time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)

	allowed, _ = bucket.Allow()
	assert.False(t, allowed)

	time.Sleep(25 * time.Millisecond)

	allowed, _ = bucket.Allow()
	assert.True(t, allowed, "bucket should refill after the interval")
}

func TestRateLimiterKeysByUserAndAction(t *testing.T) {
	rl := NewRateLimiter()

	allowed, _ := rl.Allow("alice", "report", 1, 1, time.Hour)
	assert.True(t, allowed)

	allowed, _ = rl.Allow("alice", "report", 1, 1, time.Hour)
	assert.False(t, allowed, "same user and action share a bucket")

	allowed, _ = rl.Allow("alice", "ws_connect", 1, 1, time.Hour)
	assert.True(t, allowed, "different actions do not share a bucket")

	allowed, _ = rl.Allow("bob", "report", 1, 1, time.Hour)
	assert.True(t, allowed, "different users do not share a bucket")
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("alice", "report", 5, 5, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	rl.Allow("alice", "report", 5, 5, time.Millisecond) // refills to max, then consumes one
	time.Sleep(5 * time.Millisecond)

	rl.Cleanup(time.Hour)
	assert.Len(t, rl.buckets, 1, "active buckets survive cleanup")

	// A fully refilled bucket idle past the cutoff is dropped.
	rl.buckets["alice:report"].tokens = rl.buckets["alice:report"].maxTokens
	rl.buckets["alice:report"].lastRefill = time.Now().Add(-2 * time.Hour)
	rl.Cleanup(time.Hour)
	assert.Empty(t, rl.buckets)
}
