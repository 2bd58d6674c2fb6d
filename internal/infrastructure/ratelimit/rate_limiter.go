package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// TokenBucket is a refillable bucket of request tokens.
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

// RateLimiter manages token buckets keyed by user and action.
type RateLimiter struct {
	buckets map[string]*TokenBucket
	mutex   sync.RWMutex
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*TokenBucket),
	}
}

func NewTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

// Allow checks if an action is allowed and consumes a token if so.
func (tb *TokenBucket) Allow() (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()

	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed/tb.refillTime) * tb.refillRate

	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	wait := tb.refillTime - now.Sub(tb.lastRefill)
	if wait < 0 {
		wait = 0
	}
	return false, wait
}

// Allow consumes a token from the bucket for userID+action, creating the
// bucket on first use.
func (rl *RateLimiter) Allow(userID, action string, maxTokens, refillRate int, refillTime time.Duration) (bool, time.Duration) {
	key := fmt.Sprintf("%s:%s", userID, action)

	rl.mutex.Lock()
	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = NewTokenBucket(maxTokens, refillRate, refillTime)
		rl.buckets[key] = bucket
	}
	rl.mutex.Unlock()

	return bucket.Allow()
}

// Cleanup drops buckets that refilled completely and sat idle.
func (rl *RateLimiter) Cleanup(idleFor time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	cutoff := time.Now().Add(-idleFor)
	for key, bucket := range rl.buckets {
		bucket.mutex.Lock()
		idle := bucket.lastRefill.Before(cutoff) && bucket.tokens == bucket.maxTokens
		bucket.mutex.Unlock()
		if idle {
			delete(rl.buckets, key)
		}
	}
}
